package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/infrastructure/observability"
)

// CatalogReloader reloads the price catalog from its source
type CatalogReloader interface {
	Reload(ctx context.Context) (*entities.Catalog, error)
}

// ReloadResponse summarizes the catalog that was swapped in
type ReloadResponse struct {
	Source   string    `json:"source"`
	Services int       `json:"services"`
	Regions  int       `json:"regions"`
	TipKeys  int       `json:"tipKeys"`
	LoadedAt time.Time `json:"loadedAt"`
}

// AdminHandler handles operational endpoints
type AdminHandler struct {
	reloader CatalogReloader
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(reloader CatalogReloader) *AdminHandler {
	return &AdminHandler{reloader: reloader}
}

// ReloadCatalog handles POST /api/admin/reload
func (h *AdminHandler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.reloader.Reload(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	observability.LoggerFromContext(r.Context()).Info().
		Str("source", catalog.Source()).
		Int("services", catalog.ServiceCount()).
		Msg("catalog reloaded via admin endpoint")

	respondWithJSON(w, http.StatusOK, ReloadResponse{
		Source:   catalog.Source(),
		Services: catalog.ServiceCount(),
		Regions:  len(catalog.RegionFactors()),
		TipKeys:  len(catalog.Tips()),
		LoadedAt: catalog.LoadedAt(),
	})
}
