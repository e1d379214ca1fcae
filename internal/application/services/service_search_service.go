package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/domain/repositories"
)

const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 50
)

// ServiceSearchService answers service typeahead queries.
// The search engine is preferred; the in-memory index answers when it is absent or failing.
type ServiceSearchService struct {
	engine   repositories.ServiceSearchRepository
	fallback repositories.ServiceSearchRepository
}

// NewServiceSearchService creates a search service. engine may be nil.
func NewServiceSearchService(engine, fallback repositories.ServiceSearchRepository) *ServiceSearchService {
	return &ServiceSearchService{
		engine:   engine,
		fallback: fallback,
	}
}

// Reindex replaces both indexes with the services of catalog
func (s *ServiceSearchService) Reindex(ctx context.Context, catalog *entities.Catalog) {
	services := catalog.Services()

	if err := s.fallback.Reindex(ctx, services); err != nil {
		log.Error().Err(err).Msg("Failed to rebuild in-memory service index")
	}

	if s.engine == nil {
		return
	}
	if err := s.engine.Reindex(ctx, services); err != nil {
		log.Warn().Err(err).Int("services", len(services)).Msg("Failed to index services in search engine")
		return
	}
	log.Info().Int("services", len(services)).Msg("Indexed services in search engine")
}

// Search returns services whose name or code matches query
func (s *ServiceSearchService) Search(ctx context.Context, query string, limit int) ([]entities.ServiceRecord, error) {
	query = strings.TrimSpace(query)
	limit = normalizeLimit(limit)

	if s.engine != nil && query != "" {
		results, err := s.engine.Search(ctx, query, limit)
		if err == nil {
			return results, nil
		}
		log.Warn().Err(err).Str("query", query).Msg("Search engine failed, falling back to in-memory index")
	}

	return s.fallback.Search(ctx, query, limit)
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		return MaxSearchLimit
	}
	return limit
}
