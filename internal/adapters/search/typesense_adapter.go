package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/domain/repositories"
	tsclient "github.com/zatekoja/costestimator/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements service search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements ServiceSearchRepository
var _ repositories.ServiceSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// Reindex drops the services collection and indexes every service in dataset order
func (a *TypesenseAdapter) Reindex(ctx context.Context, services []entities.ServiceRecord) error {
	if err := a.client.RecreateServicesCollection(ctx); err != nil {
		return err
	}

	documents := a.client.Client().Collection(tsclient.ServicesCollection).Documents()
	for i, svc := range services {
		if _, err := documents.Upsert(ctx, serviceDocument(svc, i)); err != nil {
			return fmt.Errorf("failed to index service %s: %w", svc.Code, err)
		}
	}
	return nil
}

// Search runs a prefix query over service names and codes
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]entities.ServiceRecord, error) {
	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,code"),
		SortBy:  pointer.String("_text_match:desc,position:asc"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.ServicesCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search services: %w", err)
	}

	services := []entities.ServiceRecord{}
	if result.Hits == nil {
		return services, nil
	}
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		if svc, ok := documentToService(*hit.Document); ok {
			services = append(services, svc)
		}
	}
	return services, nil
}

func serviceDocument(svc entities.ServiceRecord, position int) map[string]interface{} {
	return map[string]interface{}{
		"id":        svc.Code,
		"code":      svc.Code,
		"name":      svc.Name,
		"tip_key":   svc.EffectiveTipKey(),
		"base_low":  svc.Base.Low,
		"base_high": svc.Base.High,
		"position":  position,
	}
}

// documentToService rebuilds a service from a search hit.
// Typesense returns numbers as float64.
func documentToService(doc map[string]interface{}) (entities.ServiceRecord, bool) {
	code, ok := doc["code"].(string)
	if !ok || code == "" {
		return entities.ServiceRecord{}, false
	}

	svc := entities.ServiceRecord{Code: code}
	if val, ok := doc["name"].(string); ok {
		svc.Name = val
	}
	if val, ok := doc["tip_key"].(string); ok && val != entities.DefaultTipKey {
		svc.TipKey = val
	}
	if val, ok := doc["base_low"].(float64); ok {
		svc.Base.Low = val
	}
	if val, ok := doc["base_high"].(float64); ok {
		svc.Base.High = val
	}
	return svc, true
}
