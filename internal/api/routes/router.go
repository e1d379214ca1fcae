package routes

import (
	"net/http"

	"github.com/zatekoja/costestimator/internal/api/handlers"
	"github.com/zatekoja/costestimator/internal/api/middleware"
	"github.com/zatekoja/costestimator/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	healthHandler    *handlers.HealthHandler
	estimateHandler  *handlers.EstimateHandler
	serviceHandler   *handlers.ServiceHandler
	tipsHandler      *handlers.TipsHandler
	insuranceHandler *handlers.InsuranceHandler
	adminHandler     *handlers.AdminHandler

	cacheMiddleware *middleware.CacheMiddleware
	rateLimiter     *middleware.RateLimiter
	metrics         *observability.Metrics
	allowedOrigins  []string
}

// Handlers groups the HTTP handlers served by the router
type Handlers struct {
	Health    *handlers.HealthHandler
	Estimate  *handlers.EstimateHandler
	Service   *handlers.ServiceHandler
	Tips      *handlers.TipsHandler
	Insurance *handlers.InsuranceHandler
	// Admin is optional; without it the reload endpoint is not registered.
	Admin *handlers.AdminHandler
}

// NewRouter creates a new router. cacheMiddleware may be nil.
func NewRouter(
	h Handlers,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	allowedOrigins []string,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		healthHandler:    h.Health,
		estimateHandler:  h.Estimate,
		serviceHandler:   h.Service,
		tipsHandler:      h.Tips,
		insuranceHandler: h.Insurance,
		adminHandler:     h.Admin,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
		allowedOrigins:  allowedOrigins,
	}
}

// WithRateLimiter enables per-client request limiting
func (r *Router) WithRateLimiter(limiter *middleware.RateLimiter) *Router {
	r.rateLimiter = limiter
	return r
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", r.healthHandler.Health)

	// Service catalog
	r.mux.HandleFunc("GET /api/services", r.serviceHandler.ListServices)
	r.mux.HandleFunc("GET /api/services/search", r.serviceHandler.SearchServices)
	r.mux.HandleFunc("GET /api/services/{code}", r.serviceHandler.GetService)

	// Estimates
	r.mux.HandleFunc("GET /api/estimate", r.estimateHandler.GetEstimate)
	r.mux.HandleFunc("POST /api/estimate", r.estimateHandler.PostEstimate)

	// Tips
	r.mux.HandleFunc("GET /api/tips", r.tipsHandler.GetGeneralTips)
	r.mux.HandleFunc("GET /api/tips/{key}", r.tipsHandler.GetTips)

	r.mux.HandleFunc("GET /api/insurance-categories", r.insuranceHandler.ListCategories)

	if r.adminHandler != nil {
		r.mux.HandleFunc("POST /api/admin/reload", r.adminHandler.ReloadCatalog)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	// Outside the cache so HITs are logged too
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// Compression, ETag, cache headers
	handler = middleware.ResponseOptimization(handler)

	if r.rateLimiter != nil {
		handler = r.rateLimiter.Middleware(handler)
	}

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	handler = middleware.RequestIDMiddleware(handler)

	return handler
}
