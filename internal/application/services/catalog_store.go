package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/domain/providers"
	"github.com/zatekoja/costestimator/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/costestimator/pkg/errors"
)

// CatalogListener is notified after a catalog has been swapped in
type CatalogListener func(ctx context.Context, catalog *entities.Catalog)

// CatalogStore holds the current catalog snapshot.
// Readers never block; loads are serialized and replace the snapshot pointer.
type CatalogStore struct {
	provider providers.DatasetProvider
	metrics  *observability.Metrics

	current atomic.Pointer[entities.Catalog]

	mu        sync.Mutex
	listeners []CatalogListener
}

// NewCatalogStore creates an empty store backed by provider
func NewCatalogStore(provider providers.DatasetProvider, metrics *observability.Metrics) *CatalogStore {
	return &CatalogStore{
		provider: provider,
		metrics:  metrics,
	}
}

// OnLoad registers fn to run after every successful load
func (s *CatalogStore) OnLoad(fn CatalogListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Load fetches the dataset, builds a new catalog and swaps it in.
// On failure the previous snapshot, if any, stays current.
func (s *CatalogStore) Load(ctx context.Context) (*entities.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := observability.StartSpan(ctx, "CatalogStore.Load")
	defer span.End()

	source := s.provider.Describe()
	start := time.Now()

	catalog, err := s.build(ctx, source)
	observability.RecordDatasetLoad(ctx, s.metrics, source, time.Since(start), err)
	if err != nil {
		observability.RecordError(span, err)
		log.Error().Err(err).Str("source", source).Msg("failed to load price dataset")
		return nil, err
	}

	s.current.Store(catalog)
	log.Info().
		Str("source", source).
		Int("services", catalog.ServiceCount()).
		Int("regions", len(catalog.RegionFactors())).
		Int("tip_keys", len(catalog.Tips())).
		Dur("duration", time.Since(start)).
		Msg("price dataset loaded")

	for _, fn := range s.listeners {
		fn(ctx, catalog)
	}

	return catalog, nil
}

func (s *CatalogStore) build(ctx context.Context, source string) (*entities.Catalog, error) {
	ds, err := s.provider.Load(ctx)
	if err != nil {
		if _, ok := apperrors.As(err); ok {
			return nil, err
		}
		return nil, apperrors.NewDataLoadError("failed to load dataset from "+source, err)
	}
	return entities.NewCatalog(ds, source)
}

// InvalidateSource drops any copy held by the provider so the next Load reads the source
func (s *CatalogStore) InvalidateSource(ctx context.Context) {
	inv, ok := s.provider.(providers.InvalidatingDatasetProvider)
	if !ok {
		return
	}
	if err := inv.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Str("source", s.provider.Describe()).Msg("Failed to invalidate cached dataset")
	}
}

// Current returns the loaded catalog, or a DATA_LOAD error before the first successful load
func (s *CatalogStore) Current() (*entities.Catalog, error) {
	catalog := s.current.Load()
	if catalog == nil {
		return nil, apperrors.NewDataLoadError("price data is not loaded", nil)
	}
	return catalog, nil
}

// Version returns the current catalog version, or "" before the first successful load
func (s *CatalogStore) Version() string {
	if catalog := s.current.Load(); catalog != nil {
		return catalog.Version()
	}
	return ""
}
