package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/costestimator/internal/adapters/dataset"
	"github.com/zatekoja/costestimator/internal/adapters/search"
	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/costestimator/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/costestimator/internal/infrastructure/observability"
	"github.com/zatekoja/costestimator/pkg/config"
)

func main() {
	var intervalFlag string
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	observability.InitLogger("cost-estimator-indexer", cfg.Env)

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Err(err).Str("interval", intervalValue).Msg("Invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, cfg); err != nil {
			log.Error().Err(err).Msg("Reindex failed")
		}

		if interval <= 0 {
			break
		}

		log.Info().Dur("next_run_in", interval).Msg("Reindex complete")

		select {
		case <-ctx.Done():
			log.Info().Msg("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

// indexOnce rebuilds the Typesense services collection from the configured dataset source
func indexOnce(ctx context.Context, cfg *config.Config) error {
	var deps dataset.Dependencies
	if cfg.Dataset.Source == dataset.SourcePostgres {
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			return err
		}
		defer pgClient.Close()
		deps.Postgres = pgClient
	}

	provider, err := dataset.NewProvider(cfg.Dataset, deps)
	if err != nil {
		return err
	}

	ds, err := provider.Load(ctx)
	if err != nil {
		return err
	}

	catalog, err := entities.NewCatalog(ds, provider.Describe())
	if err != nil {
		return err
	}

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	log.Info().Int("services", catalog.ServiceCount()).Str("source", catalog.Source()).Msg("Indexing services")

	start := time.Now()
	if err := search.NewTypesenseAdapter(tsClient).Reindex(ctx, catalog.Services()); err != nil {
		return err
	}

	log.Info().Int("services", catalog.ServiceCount()).Dur("duration", time.Since(start)).Msg("Services indexed")
	return nil
}
