package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/domain/providers"
	apperrors "github.com/zatekoja/costestimator/pkg/errors"
	"github.com/zatekoja/costestimator/pkg/retry"
)

const maxDatasetBytes = 10 << 20

// HTTPProvider fetches the dataset from a URL, bypassing HTTP caches
type HTTPProvider struct {
	url      string
	format   Format
	client   *http.Client
	attempts int
	maxBytes int64
}

var _ providers.DatasetProvider = (*HTTPProvider)(nil)

// NewHTTPProvider creates an HTTP provider. attempts below 1 means a single try.
// An empty format is taken from the response Content-Type, then the URL extension.
func NewHTTPProvider(rawURL string, format Format, timeout time.Duration, attempts int) *HTTPProvider {
	return &HTTPProvider{
		url:      rawURL,
		format:   format,
		client:   &http.Client{Timeout: timeout},
		attempts: attempts,
		maxBytes: maxDatasetBytes,
	}
}

// WithClient replaces the HTTP client
func (p *HTTPProvider) WithClient(client *http.Client) *HTTPProvider {
	p.client = client
	return p
}

// Load fetches and decodes the document
func (p *HTTPProvider) Load(ctx context.Context) (*entities.Dataset, error) {
	var ds *entities.Dataset

	err := retry.DoWithLog(ctx, retry.Attempts(p.attempts), "dataset fetch", func() error {
		var err error
		ds, err = p.fetch(ctx)
		return err
	}, retry.LogAttempt("dataset fetch"))
	if err != nil {
		if _, ok := apperrors.As(err); ok {
			return nil, err
		}
		return nil, apperrors.NewDataLoadError("failed to fetch dataset from "+p.url, err)
	}
	return ds, nil
}

func (p *HTTPProvider) fetch(ctx context.Context) (*entities.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Accept", "application/json, application/yaml, application/toml;q=0.9, */*;q=0.5")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, p.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > p.maxBytes {
		return nil, apperrors.NewDataLoadError(fmt.Sprintf("dataset from %s exceeds %d bytes", p.url, p.maxBytes), nil)
	}

	ds, err := Decode(body, p.responseFormat(resp))
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func (p *HTTPProvider) responseFormat(resp *http.Response) Format {
	if p.format != "" {
		return p.format
	}
	if format, ok := FormatFromContentType(resp.Header.Get("Content-Type")); ok {
		return format
	}
	if u, err := url.Parse(p.url); err == nil {
		return FormatFromPath(u.Path)
	}
	return FormatJSON
}

// Describe returns the URL
func (p *HTTPProvider) Describe() string {
	return p.url
}
