package handlers

import (
	"net/http"
	"time"

	"github.com/zatekoja/costestimator/internal/domain/entities"
)

// CatalogStatus exposes the current catalog snapshot
type CatalogStatus interface {
	Current() (*entities.Catalog, error)
}

// HealthHandler reports whether a catalog is loaded
type HealthHandler struct {
	catalogs CatalogStatus
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(catalogs CatalogStatus) *HealthHandler {
	return &HealthHandler{catalogs: catalogs}
}

// Health handles GET /health. It answers 503 until the first load succeeds.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.catalogs.Current()
	if err != nil {
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status": "unavailable",
			"error":  err.Error(),
		})
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"source":   catalog.Source(),
		"services": catalog.ServiceCount(),
		"loadedAt": catalog.LoadedAt().Format(time.RFC3339),
	})
}
