package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zatekoja/costestimator/internal/adapters/cache"
	"github.com/zatekoja/costestimator/internal/adapters/dataset"
	"github.com/zatekoja/costestimator/internal/adapters/events"
	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/domain/providers"
	"github.com/zatekoja/costestimator/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/costestimator/internal/infrastructure/clients/redis"
	"github.com/zatekoja/costestimator/internal/infrastructure/observability"
	"github.com/zatekoja/costestimator/pkg/config"
)

const seedOrigin = "seed"

var (
	seedFormat string
	seedNotify bool
)

var seedCmd = &cobra.Command{
	Use:   "seed <dataset-file>",
	Short: "Load a dataset file into the postgres price tables",
	Long: `Validates a JSON, YAML or TOML dataset file and replaces the contents of the
services, region_factors and service_tips tables with it. With --notify, running
API instances are told to reload through the Redis dataset channel.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFormat, "format", "", "dataset format: json, yaml or toml (default from extension)")
	seedCmd.Flags().BoolVar(&seedNotify, "notify", true, "publish a reload event when Redis is enabled")
}

func main() {
	if err := seedCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	observability.InitLogger("cost-estimator-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	format, err := dataset.ParseFormat(seedFormat)
	if err != nil {
		return err
	}

	source := dataset.NewFileProvider(args[0], format)
	ds, err := source.Load(ctx)
	if err != nil {
		return err
	}

	// Reject what the API would reject before touching the tables
	catalog, err := entities.NewCatalog(ds, source.Describe())
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer pgClient.Close()

	store := dataset.NewPostgresProvider(pgClient)
	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := store.Store(ctx, ds); err != nil {
		return err
	}

	log.Info().
		Str("file", args[0]).
		Int("services", catalog.ServiceCount()).
		Int("regions", len(catalog.RegionFactors())).
		Int("tip_keys", len(catalog.Tips())).
		Msg("Dataset seeded")

	if cfg.Redis.Enabled {
		notifyInstances(ctx, cfg, pgClient, catalog)
	}
	return nil
}

// notifyInstances drops the shared dataset cache and tells API instances to reload
func notifyInstances(ctx context.Context, cfg *config.Config, pgClient *postgres.Client, catalog *entities.Catalog) {
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running instances will not be notified")
		return
	}
	defer redisClient.Close()

	cacheProvider := cache.NewRedisAdapter(redisClient)
	cached, err := dataset.NewProvider(config.DatasetConfig{
		Source:   dataset.SourcePostgres,
		CacheTTL: cfg.Dataset.CacheTTL,
	}, dataset.Dependencies{Postgres: pgClient, Cache: cacheProvider})
	if err == nil {
		if inv, ok := cached.(providers.InvalidatingDatasetProvider); ok {
			if err := inv.Invalidate(ctx); err != nil {
				log.Warn().Err(err).Msg("Failed to invalidate cached dataset")
			}
		}
	}

	if !seedNotify {
		return
	}

	bus := events.NewRedisEventBus(redisClient)
	defer bus.Close()

	event := entities.NewDatasetReloadedEvent(seedOrigin, catalog)
	if err := bus.Publish(ctx, providers.EventChannelDataset, event); err != nil {
		log.Warn().Err(err).Msg("Failed to publish dataset event")
		return
	}
	log.Info().Str("event_id", event.ID).Msg("Published dataset reload event")
}
