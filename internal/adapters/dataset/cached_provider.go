package dataset

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/domain/providers"
	"github.com/zatekoja/costestimator/internal/infrastructure/observability"
)

const datasetCacheKeyPrefix = "dataset:"

// CachedProvider wraps a DatasetProvider with a shared cache of the decoded document
type CachedProvider struct {
	provider providers.DatasetProvider
	cache    providers.CacheProvider
	ttl      time.Duration
	metrics  *observability.Metrics
}

var _ providers.DatasetProvider = (*CachedProvider)(nil)

// NewCachedProvider creates a new cached dataset provider
func NewCachedProvider(provider providers.DatasetProvider, cache providers.CacheProvider, ttl time.Duration, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		metrics:  metrics,
	}
}

func (p *CachedProvider) cacheKey() string {
	return datasetCacheKeyPrefix + p.provider.Describe()
}

// Load returns the cached dataset when present, otherwise loads it and caches the result.
// Cache failures never fail the load.
func (p *CachedProvider) Load(ctx context.Context) (*entities.Dataset, error) {
	key := p.cacheKey()

	cached, err := p.cache.Get(ctx, key)
	switch {
	case err == nil && cached != nil:
		ds, err := Decode(cached, FormatJSON)
		if err == nil {
			observability.RecordCacheHit(ctx, p.metrics, datasetCacheKeyPrefix)
			return ds, nil
		}
		log.Warn().Err(err).Str("key", key).Msg("Failed to unmarshal cached dataset")
	case err != nil && !errors.Is(err, providers.ErrCacheMiss):
		log.Warn().Err(err).Str("key", key).Msg("Dataset cache unavailable")
	}
	observability.RecordCacheMiss(ctx, p.metrics, datasetCacheKeyPrefix)

	ds, err := p.provider.Load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := Encode(ds, FormatJSON); err == nil {
		if err := p.cache.Set(ctx, key, data, int(p.ttl.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to cache dataset")
		}
	}
	return ds, nil
}

// Invalidate drops the cached document so the next Load reads the source
func (p *CachedProvider) Invalidate(ctx context.Context) error {
	return p.cache.Delete(ctx, p.cacheKey())
}

// Describe returns the wrapped provider's description
func (p *CachedProvider) Describe() string {
	return p.provider.Describe()
}
