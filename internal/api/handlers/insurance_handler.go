package handlers

import (
	"net/http"

	"github.com/zatekoja/costestimator/internal/presentation"
)

// InsuranceHandler handles insurance category requests
type InsuranceHandler struct{}

// NewInsuranceHandler creates a new insurance handler
func NewInsuranceHandler() *InsuranceHandler {
	return &InsuranceHandler{}
}

// ListCategories handles GET /api/insurance-categories
func (h *InsuranceHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories := presentation.InsuranceOptions()

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}
