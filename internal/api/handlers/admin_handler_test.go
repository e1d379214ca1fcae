package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/costestimator/internal/api/handlers"
	apperrors "github.com/zatekoja/costestimator/pkg/errors"
)

func TestAdminHandler_ReloadCatalog(t *testing.T) {
	mockReloader := new(MockCatalogReloader)
	handler := handlers.NewAdminHandler(mockReloader)

	catalog := sampleCatalog()
	mockReloader.On("Reload", mock.Anything).Return(catalog, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/reload", nil)
	w := httptest.NewRecorder()

	handler.ReloadCatalog(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.ReloadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "file:data/prices.json", resp.Source)
	assert.Equal(t, 2, resp.Services)
	assert.Equal(t, 1, resp.Regions)
	assert.Equal(t, 2, resp.TipKeys)
	assert.True(t, resp.LoadedAt.Equal(catalog.LoadedAt()))
}

func TestAdminHandler_ReloadCatalog_Failure(t *testing.T) {
	mockReloader := new(MockCatalogReloader)
	handler := handlers.NewAdminHandler(mockReloader)

	mockReloader.On("Reload", mock.Anything).Return(nil, apperrors.NewDataLoadError("failed to load dataset", assert.AnError))

	req := httptest.NewRequest(http.MethodPost, "/api/admin/reload", nil)
	w := httptest.NewRecorder()

	handler.ReloadCatalog(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DATA_LOAD", resp.Code)
	assert.Equal(t, "failed to load dataset", resp.Error)
}

func TestHealthHandler(t *testing.T) {
	t.Run("loaded", func(t *testing.T) {
		handler := handlers.NewHealthHandler(stubCatalogStatus{catalog: sampleCatalog()})

		w := httptest.NewRecorder()
		handler.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp["status"])
		assert.Equal(t, float64(2), resp["services"])
	})

	t.Run("not loaded", func(t *testing.T) {
		handler := handlers.NewHealthHandler(stubCatalogStatus{err: apperrors.NewDataLoadError("price data is not loaded", nil)})

		w := httptest.NewRecorder()
		handler.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "unavailable")
	})
}
