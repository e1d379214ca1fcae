// Package cli implements the estimate command-line tool.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zatekoja/costestimator/internal/adapters/dataset"
	"github.com/zatekoja/costestimator/internal/application/services"
	"github.com/zatekoja/costestimator/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/costestimator/internal/infrastructure/observability"
	"github.com/zatekoja/costestimator/pkg/config"
)

var (
	dataSource string
	dataFormat string
	verbose    bool
)

// annotationNeedsCatalog marks commands that read the price data
const annotationNeedsCatalog = "needs-catalog"

// estimator is built from the dataset flags before each command runs
var estimator *services.EstimatorService

var rootCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate out-of-pocket prices for common medical services",
	Long: `Estimates a price range for a medical service from a static price table,
adjusted for the region of a ZIP code and an insurance category.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadCatalog,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataSource, "data", "", "dataset file, http(s) URL or \"postgres\" (default $DATASET_SOURCE)")
	rootCmd.PersistentFlags().StringVar(&dataFormat, "format", "", "dataset format: json, yaml or toml (default from extension)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log dataset loading")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func loadCatalog(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[annotationNeedsCatalog] != "true" {
		return nil
	}

	if verbose {
		observability.InitLoggerTo(cmd.ErrOrStderr(), "estimate", "development")
	} else {
		log.Logger = zerolog.Nop()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	datasetCfg := cfg.Dataset
	if dataSource != "" {
		datasetCfg.Source = dataSource
	}
	if dataFormat != "" {
		datasetCfg.Format = dataFormat
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var deps dataset.Dependencies
	if datasetCfg.Source == dataset.SourcePostgres {
		client, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}
		defer client.Close()
		deps.Postgres = client
	}

	provider, err := dataset.NewProvider(datasetCfg, deps)
	if err != nil {
		return err
	}

	store := services.NewCatalogStore(provider, nil)
	if _, err := store.Load(ctx); err != nil {
		return fmt.Errorf("failed to load price data from %s: %w", provider.Describe(), err)
	}

	estimator = services.NewEstimatorService(store, nil)
	return nil
}
