package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/costestimator/internal/domain/entities"
)

type MockEstimator struct {
	mock.Mock
}

func (m *MockEstimator) Quote(ctx context.Context, req entities.EstimateRequest) (*entities.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Quote), args.Error(1)
}

func (m *MockEstimator) ListServices(ctx context.Context) ([]entities.ServiceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ServiceRecord), args.Error(1)
}

func (m *MockEstimator) GetService(ctx context.Context, code string) (*entities.ServiceRecord, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ServiceRecord), args.Error(1)
}

func (m *MockEstimator) Tips(ctx context.Context, key string) ([]string, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockServiceSearcher struct {
	mock.Mock
}

func (m *MockServiceSearcher) Search(ctx context.Context, query string, limit int) ([]entities.ServiceRecord, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ServiceRecord), args.Error(1)
}

type MockCatalogReloader struct {
	mock.Mock
}

func (m *MockCatalogReloader) Reload(ctx context.Context) (*entities.Catalog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Catalog), args.Error(1)
}

type stubCatalogStatus struct {
	catalog *entities.Catalog
	err     error
}

func (s stubCatalogStatus) Current() (*entities.Catalog, error) {
	return s.catalog, s.err
}

func sampleServices() []entities.ServiceRecord {
	return []entities.ServiceRecord{
		{Code: "mri", Name: "MRI (no contrast)", Base: entities.PriceRange{Low: 500, High: 1500}, TipKey: "mri"},
		{Code: "xray", Name: "X-ray", Base: entities.PriceRange{Low: 100, High: 200}},
	}
}

func sampleCatalog() *entities.Catalog {
	catalog, err := entities.NewCatalog(&entities.Dataset{
		Services:      sampleServices(),
		RegionFactors: map[string]float64{"midwest": 1.1},
		Tips: map[string][]string{
			"general": {"Ask for an itemized estimate."},
			"mri":     {"Freestanding imaging centers are often cheaper."},
		},
	}, "file:data/prices.json")
	if err != nil {
		panic(err)
	}
	return catalog
}
