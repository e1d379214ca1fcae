package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/presentation"
	apperrors "github.com/zatekoja/costestimator/pkg/errors"
)

const maxRequestBodyBytes = 1 << 20

// Estimator is the read side of the catalog used by the HTTP handlers
type Estimator interface {
	Quote(ctx context.Context, req entities.EstimateRequest) (*entities.Quote, error)
	ListServices(ctx context.Context) ([]entities.ServiceRecord, error)
	GetService(ctx context.Context, code string) (*entities.ServiceRecord, error)
	Tips(ctx context.Context, key string) ([]string, error)
}

// EstimateResponse is a quote with its display strings
type EstimateResponse struct {
	entities.Quote
	Display presentation.QuoteDisplay `json:"display"`
}

// EstimateHandler handles price estimate requests
type EstimateHandler struct {
	estimator Estimator
}

// NewEstimateHandler creates a new estimate handler
func NewEstimateHandler(estimator Estimator) *EstimateHandler {
	return &EstimateHandler{estimator: estimator}
}

// GetEstimate handles GET /api/estimate?service=&zip=&insurance=
func (h *EstimateHandler) GetEstimate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := entities.EstimateRequest{
		ServiceCode: strings.TrimSpace(query.Get("service")),
		ZIP:         query.Get("zip"),
		Insurance:   entities.InsuranceCategory(strings.TrimSpace(query.Get("insurance"))),
	}

	h.respondWithQuote(w, r, req)
}

// PostEstimate handles POST /api/estimate with a JSON body
func (h *EstimateHandler) PostEstimate(w http.ResponseWriter, r *http.Request) {
	var req entities.EstimateRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		respondWithAppError(w, r, apperrors.NewValidationError("invalid request body"))
		return
	}
	req.ServiceCode = strings.TrimSpace(req.ServiceCode)

	h.respondWithQuote(w, r, req)
}

func (h *EstimateHandler) respondWithQuote(w http.ResponseWriter, r *http.Request, req entities.EstimateRequest) {
	quote, err := h.estimator.Quote(r.Context(), req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, EstimateResponse{
		Quote:   *quote,
		Display: presentation.DisplayQuote(quote.EstimateResult),
	})
}
