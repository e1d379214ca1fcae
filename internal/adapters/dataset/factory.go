package dataset

import (
	"fmt"
	"strings"

	"github.com/zatekoja/costestimator/internal/domain/providers"
	"github.com/zatekoja/costestimator/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/costestimator/internal/infrastructure/observability"
	"github.com/zatekoja/costestimator/pkg/config"
)

// SourcePostgres selects the seeded Postgres tables as the dataset source
const SourcePostgres = "postgres"

// IsFileSource reports whether source names a local file rather than a URL or Postgres
func IsFileSource(source string) bool {
	return source != SourcePostgres &&
		!strings.HasPrefix(source, "http://") &&
		!strings.HasPrefix(source, "https://")
}

// Dependencies are the optional backing services a provider may need
type Dependencies struct {
	Postgres *postgres.Client
	Cache    providers.CacheProvider
	Metrics  *observability.Metrics
}

// NewProvider builds the dataset provider selected by cfg.Source.
// When a cache is available and CacheTTL is positive the provider is wrapped with CachedProvider.
func NewProvider(cfg config.DatasetConfig, deps Dependencies) (providers.DatasetProvider, error) {
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	var provider providers.DatasetProvider
	switch {
	case cfg.Source == SourcePostgres:
		if deps.Postgres == nil {
			return nil, fmt.Errorf("dataset source %q requires DB_ENABLED=true", SourcePostgres)
		}
		provider = NewPostgresProvider(deps.Postgres)
	case IsFileSource(cfg.Source):
		provider = NewFileProvider(cfg.Source, format)
	default:
		provider = NewHTTPProvider(cfg.Source, format, cfg.FetchTimeout, cfg.RetryAttempts)
	}

	if deps.Cache != nil && cfg.CacheTTL > 0 {
		provider = NewCachedProvider(provider, deps.Cache, cfg.CacheTTL, deps.Metrics)
	}
	return provider, nil
}
