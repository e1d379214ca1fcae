package repositories

import (
	"context"

	"github.com/zatekoja/costestimator/internal/domain/entities"
)

// ServiceSearchRepository indexes service names for typeahead lookups
type ServiceSearchRepository interface {
	// Reindex replaces the indexed services with the given set
	Reindex(ctx context.Context, services []entities.ServiceRecord) error

	// Search returns services whose name or code matches query, best first
	Search(ctx context.Context, query string, limit int) ([]entities.ServiceRecord, error)
}
