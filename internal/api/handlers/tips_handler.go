package handlers

import (
	"net/http"

	"github.com/zatekoja/costestimator/internal/domain/entities"
)

// TipsHandler serves the advisory tips
type TipsHandler struct {
	estimator Estimator
}

// NewTipsHandler creates a new tips handler
func NewTipsHandler(estimator Estimator) *TipsHandler {
	return &TipsHandler{estimator: estimator}
}

// GetGeneralTips handles GET /api/tips
func (h *TipsHandler) GetGeneralTips(w http.ResponseWriter, r *http.Request) {
	h.respondWithTips(w, r, entities.DefaultTipKey)
}

// GetTips handles GET /api/tips/{key}. Unknown keys get the general tips.
func (h *TipsHandler) GetTips(w http.ResponseWriter, r *http.Request) {
	h.respondWithTips(w, r, r.PathValue("key"))
}

func (h *TipsHandler) respondWithTips(w http.ResponseWriter, r *http.Request, key string) {
	tips, err := h.estimator.Tips(r.Context(), key)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"key":  key,
		"tips": tips,
	})
}
