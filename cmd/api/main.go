package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/costestimator/internal/adapters/cache"
	"github.com/zatekoja/costestimator/internal/adapters/dataset"
	"github.com/zatekoja/costestimator/internal/adapters/events"
	"github.com/zatekoja/costestimator/internal/adapters/search"
	"github.com/zatekoja/costestimator/internal/api/handlers"
	"github.com/zatekoja/costestimator/internal/api/middleware"
	"github.com/zatekoja/costestimator/internal/api/routes"
	"github.com/zatekoja/costestimator/internal/application/services"
	"github.com/zatekoja/costestimator/internal/domain/providers"
	"github.com/zatekoja/costestimator/internal/domain/repositories"
	"github.com/zatekoja/costestimator/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/costestimator/internal/infrastructure/clients/redis"
	"github.com/zatekoja/costestimator/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/costestimator/internal/infrastructure/observability"
	"github.com/zatekoja/costestimator/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	var pgClient *postgres.Client
	if cfg.Database.Enabled {
		pgClient, err = postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()
	}

	// Redis is optional: without it there is no shared cache and no cross-instance reload
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without cache and event bus")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient)
			eventBus = events.NewRedisEventBus(redisClient)
		}
	}

	var searchEngine repositories.ServiceSearchRepository
	if cfg.Typesense.Enabled {
		typesenseClient, err := typesense.NewClient(&cfg.Typesense)
		if err != nil {
			log.Warn().Err(err).Msg("Typesense unavailable, using in-memory service search")
		} else {
			searchEngine = search.NewTypesenseAdapter(typesenseClient)
		}
	}

	datasetProvider, err := dataset.NewProvider(cfg.Dataset, dataset.Dependencies{
		Postgres: pgClient,
		Cache:    cacheProvider,
		Metrics:  metrics,
	})
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.Dataset.Source).Msg("Invalid dataset configuration")
	}

	store := services.NewCatalogStore(datasetProvider, metrics)
	searchService := services.NewServiceSearchService(searchEngine, search.NewMemoryAdapter())
	store.OnLoad(searchService.Reindex)

	// A failed first load is not fatal: requests answer 503 until a reload succeeds
	if _, err := store.Load(ctx); err != nil {
		log.Error().Err(err).Msg("Initial dataset load failed; serving 503 until reload")
	}

	reloadService := services.NewCatalogReloadService(store, eventBus, cacheProvider)
	if err := reloadService.Start(); err != nil {
		log.Warn().Err(err).Msg("Failed to start dataset event subscriber")
	}

	if cfg.Dataset.Watch && dataset.IsFileSource(cfg.Dataset.Source) {
		changes, err := dataset.NewFileWatcher(cfg.Dataset.Source).Watch(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to watch dataset file")
		} else {
			go func() {
				for range changes {
					if _, err := reloadService.Reload(ctx); err != nil {
						log.Error().Err(err).Msg("Reload after dataset change failed; keeping previous catalog")
					}
				}
			}()
		}
	}

	estimator := services.NewEstimatorService(store, metrics)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics).WithVersion(store.Version)
	}

	router := routes.NewRouter(routes.Handlers{
		Health:    handlers.NewHealthHandler(store),
		Estimate:  handlers.NewEstimateHandler(estimator),
		Service:   handlers.NewServiceHandler(estimator, searchService),
		Tips:      handlers.NewTipsHandler(estimator),
		Insurance: handlers.NewInsuranceHandler(),
		Admin:     handlers.NewAdminHandler(reloadService),
	}, cacheMiddleware, metrics, cfg.Server.AllowedOrigins)
	if cfg.Server.RateLimitRPS > 0 {
		limiter, err := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst).
			WithTrustedProxies(cfg.Server.TrustedProxies)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid RATE_LIMIT_TRUSTED_PROXIES")
		}
		router.WithRateLimiter(limiter)
	}

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Str("dataset", datasetProvider.Describe()).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	reloadService.Stop()
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}

	log.Info().Msg("Server stopped")
}
