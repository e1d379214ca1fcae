package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/zatekoja/costestimator/internal/domain/entities"
	apperrors "github.com/zatekoja/costestimator/pkg/errors"
)

// ServiceSearcher finds services for the typeahead
type ServiceSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]entities.ServiceRecord, error)
}

// ServiceHandler handles service catalog requests
type ServiceHandler struct {
	estimator Estimator
	searcher  ServiceSearcher
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(estimator Estimator, searcher ServiceSearcher) *ServiceHandler {
	return &ServiceHandler{
		estimator: estimator,
		searcher:  searcher,
	}
}

// ListServices handles GET /api/services
func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.estimator.ListServices(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"services": services,
		"count":    len(services),
	})
}

// GetService handles GET /api/services/{code}
func (h *ServiceHandler) GetService(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "service code is required")
		return
	}

	service, err := h.estimator.GetService(r.Context(), code)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, service)
}

// SearchServices handles GET /api/services/search?q=&limit=
func (h *ServiceHandler) SearchServices(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondWithAppError(w, r, apperrors.NewValidationError("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	services, err := h.searcher.Search(r.Context(), query, limit)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"query":    query,
		"services": services,
		"count":    len(services),
	})
}
