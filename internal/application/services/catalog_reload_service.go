package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/domain/providers"
)

// HTTPCachePattern matches every response cached by the HTTP cache middleware
const HTTPCachePattern = "http:cache:*"

const eventReloadTimeout = 30 * time.Second

// CatalogReloadService reloads the catalog on demand and keeps other instances in step
// through dataset events.
type CatalogReloadService struct {
	store      *CatalogStore
	eventBus   providers.EventBus
	cache      providers.CacheProvider
	instanceID string
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewCatalogReloadService creates a reload service. eventBus and cache may be nil.
func NewCatalogReloadService(store *CatalogStore, eventBus providers.EventBus, cache providers.CacheProvider) *CatalogReloadService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CatalogReloadService{
		store:      store,
		eventBus:   eventBus,
		cache:      cache,
		instanceID: uuid.New().String(),
		ctx:        ctx,
		cancel:     cancel,
	}
}

// InstanceID identifies this process as the origin of the events it publishes
func (s *CatalogReloadService) InstanceID() string {
	return s.instanceID
}

// Start begins listening for dataset events from other instances
func (s *CatalogReloadService) Start() error {
	if s.eventBus == nil {
		log.Info().Msg("Catalog reload service running without event bus")
		return nil
	}

	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelDataset)
	if err != nil {
		return fmt.Errorf("failed to subscribe to dataset events: %w", err)
	}

	go s.processEvents(eventChan)
	log.Info().Str("instance_id", s.instanceID).Msg("Catalog reload service started")
	return nil
}

// Stop stops the catalog reload service
func (s *CatalogReloadService) Stop() {
	s.cancel()
	log.Info().Msg("Catalog reload service stopped")
}

// Reload loads a fresh catalog, drops cached responses and announces the reload
func (s *CatalogReloadService) Reload(ctx context.Context) (*entities.Catalog, error) {
	s.store.InvalidateSource(ctx)

	catalog, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)

	if s.eventBus != nil {
		event := entities.NewDatasetReloadedEvent(s.instanceID, catalog)
		if err := s.eventBus.Publish(ctx, providers.EventChannelDataset, event); err != nil {
			log.Warn().Err(err).Str("event_id", event.ID).Msg("Failed to publish dataset event")
		}
	}

	return catalog, nil
}

func (s *CatalogReloadService) processEvents(eventChan <-chan *entities.DatasetEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *CatalogReloadService) handleEvent(event *entities.DatasetEvent) {
	if event.Origin == s.instanceID {
		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, eventReloadTimeout)
	defer cancel()

	log.Info().
		Str("event_id", event.ID).
		Str("origin", event.Origin).
		Str("source", event.Source).
		Msg("Reloading catalog after remote dataset event")

	if _, err := s.store.Load(ctx); err != nil {
		// previous snapshot stays in service
		return
	}
	s.invalidateCache(ctx)
}

func (s *CatalogReloadService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, HTTPCachePattern); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate HTTP cache")
	}
}
