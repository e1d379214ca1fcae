package typesense

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/zatekoja/costestimator/pkg/config"
	"github.com/zatekoja/costestimator/pkg/retry"
)

const (
	ServicesCollection = "services"
)

// Client represents a Typesense client
type Client struct {
	client *typesense.Client
}

// NewClient creates a new Typesense client with exponential backoff retry
func NewClient(cfg *config.TypesenseConfig) (*Client, error) {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)

	retryConfig := retry.DefaultConfig()
	retryConfig.MaxTotalTimeout = 20 * time.Second
	err := retry.DoWithLog(
		context.Background(),
		retryConfig,
		"Typesense",
		func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, err := client.Health(ctx, 2*time.Second)
			return err
		},
		retry.LogAttempt("Typesense"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Typesense after retries: %w", err)
	}

	log.Info().Str("url", cfg.URL).Msg("Connected to Typesense")
	return &Client{client: client}, nil
}

// Client returns the underlying Typesense client
func (c *Client) Client() *typesense.Client {
	return c.client
}

// ServicesSchema is the collection schema used for service typeahead
func ServicesSchema() *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: ServicesCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "code", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "tip_key", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "base_low", Type: "float"},
			{Name: "base_high", Type: "float"},
			{Name: "position", Type: "int32"},
		},
		DefaultSortingField: pointer.String("position"),
	}
}

// RecreateServicesCollection drops the services collection if present and creates it empty
func (c *Client) RecreateServicesCollection(ctx context.Context) error {
	if _, err := c.client.Collection(ServicesCollection).Retrieve(ctx); err == nil {
		if _, err := c.client.Collection(ServicesCollection).Delete(ctx); err != nil {
			return fmt.Errorf("failed to drop collection %s: %w", ServicesCollection, err)
		}
	}

	if _, err := c.client.Collections().Create(ctx, ServicesSchema()); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", ServicesCollection, err)
	}

	log.Debug().Str("collection", ServicesCollection).Msg("Created Typesense collection")
	return nil
}
