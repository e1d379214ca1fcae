package services_test

import (
	"context"
	"path"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/costestimator/internal/domain/entities"
)

func sampleDataset() *entities.Dataset {
	return &entities.Dataset{
		Services: []entities.ServiceRecord{
			{Code: "mri", Name: "MRI (no contrast)", Base: entities.PriceRange{Low: 500, High: 1500}, TipKey: "mri"},
			{Code: "xray", Name: "X-ray (2 views)", Base: entities.PriceRange{Low: 100, High: 200}},
			{Code: "ct", Name: "CT scan", Base: entities.PriceRange{Low: 2.5, High: 2.5}, TipKey: "missing"},
		},
		RegionFactors: map[string]float64{
			"midwest": 1.1,
			"west":    1.25,
		},
		Tips: map[string][]string{
			"mri":     {"Ask whether contrast is needed."},
			"general": {"Ask for the cash price."},
		},
	}
}

// MockDatasetProvider is a testify mock of providers.DatasetProvider
type MockDatasetProvider struct {
	mock.Mock
}

func (m *MockDatasetProvider) Load(ctx context.Context) (*entities.Dataset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Dataset), args.Error(1)
}

func (m *MockDatasetProvider) Describe() string {
	return "mock"
}

// MockSearchRepository is a testify mock of repositories.ServiceSearchRepository
type MockSearchRepository struct {
	mock.Mock
}

func (m *MockSearchRepository) Reindex(ctx context.Context, services []entities.ServiceRecord) error {
	args := m.Called(ctx, services)
	return args.Error(0)
}

func (m *MockSearchRepository) Search(ctx context.Context, query string, limit int) ([]entities.ServiceRecord, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ServiceRecord), args.Error(1)
}

// MockCacheProvider for testing
type MockCacheProvider struct {
	mu       sync.Mutex
	data     map[string][]byte
	patterns []string
}

func NewMockCacheProvider() *MockCacheProvider {
	return &MockCacheProvider{data: make(map[string][]byte)}
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *MockCacheProvider) DeletePattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patterns = append(m.patterns, pattern)
	for key := range m.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.data, key)
		}
	}
	return nil
}

func (m *MockCacheProvider) Patterns() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.patterns...)
}

// MockEventBus delivers published events to subscribers in-process
type MockEventBus struct {
	mu        sync.Mutex
	published []*entities.DatasetEvent
	subs      map[string]chan *entities.DatasetEvent
}

func NewMockEventBus() *MockEventBus {
	return &MockEventBus{subs: make(map[string]chan *entities.DatasetEvent)}
}

func (b *MockEventBus) Publish(ctx context.Context, channel string, event *entities.DatasetEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, event)
	if ch, ok := b.subs[channel]; ok {
		ch <- event
	}
	return nil
}

func (b *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.DatasetEvent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan *entities.DatasetEvent, 10)
	b.subs[channel] = ch
	return ch, nil
}

func (b *MockEventBus) Close() error {
	return nil
}

func (b *MockEventBus) Published() []*entities.DatasetEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*entities.DatasetEvent{}, b.published...)
}
