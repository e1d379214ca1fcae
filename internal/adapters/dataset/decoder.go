package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/zatekoja/costestimator/internal/domain/entities"
)

// Format is a dataset document encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat parses an explicit format name. An empty name yields "".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return "", nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported dataset format %q", name)
	}
}

// FormatFromPath detects the format from a file path or URL path extension, defaulting to JSON
func FormatFromPath(p string) Format {
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// FormatFromContentType detects the format from an HTTP Content-Type header
func FormatFromContentType(contentType string) (Format, bool) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", false
	}
	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return FormatJSON, true
	case strings.Contains(mediaType, "yaml"):
		return FormatYAML, true
	case strings.Contains(mediaType, "toml"):
		return FormatTOML, true
	default:
		return "", false
	}
}

// Decode parses a dataset document. Missing sections decode to empty collections.
func Decode(data []byte, format Format) (*entities.Dataset, error) {
	var ds entities.Dataset

	switch format {
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&ds); err != nil {
			return nil, fmt.Errorf("failed to parse JSON dataset: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &ds); err != nil {
			return nil, fmt.Errorf("failed to parse YAML dataset: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &ds); err != nil {
			return nil, fmt.Errorf("failed to parse TOML dataset: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}

	if ds.Services == nil {
		ds.Services = []entities.ServiceRecord{}
	}
	if ds.RegionFactors == nil {
		ds.RegionFactors = map[string]float64{}
	}
	if ds.Tips == nil {
		ds.Tips = map[string][]string{}
	}
	return &ds, nil
}

// Encode renders ds in format. CachedProvider stores datasets as JSON.
func Encode(ds *entities.Dataset, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return json.Marshal(ds)
	case FormatYAML:
		return yaml.Marshal(ds)
	case FormatTOML:
		return toml.Marshal(ds)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}
}
