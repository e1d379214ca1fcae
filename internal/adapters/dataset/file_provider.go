package dataset

import (
	"context"
	"os"

	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/domain/providers"
	apperrors "github.com/zatekoja/costestimator/pkg/errors"
)

// FileProvider loads the dataset from a local file
type FileProvider struct {
	path   string
	format Format
}

var _ providers.DatasetProvider = (*FileProvider)(nil)

// NewFileProvider creates a file provider. An empty format is detected from the extension.
func NewFileProvider(path string, format Format) *FileProvider {
	if format == "" {
		format = FormatFromPath(path)
	}
	return &FileProvider{path: path, format: format}
}

// Load reads and decodes the file
func (p *FileProvider) Load(ctx context.Context) (*entities.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewDataLoadError("dataset load cancelled", err)
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, apperrors.NewDataLoadError("failed to read dataset file", err)
	}

	ds, err := Decode(data, p.format)
	if err != nil {
		return nil, apperrors.NewDataLoadError("failed to decode dataset file "+p.path, err)
	}
	return ds, nil
}

// Describe returns the file path
func (p *FileProvider) Describe() string {
	return p.path
}
