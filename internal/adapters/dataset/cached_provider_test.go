package dataset

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/domain/providers"
)

type mockDatasetProvider struct {
	mock.Mock
}

func (m *mockDatasetProvider) Load(ctx context.Context) (*entities.Dataset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Dataset), args.Error(1)
}

func (m *mockDatasetProvider) Describe() string {
	return "data/prices.json"
}

type memoryCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]int
	failGet bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}, ttls: map[string]int{}}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, errors.New("connection refused")
	}
	v, ok := c.data[key]
	if !ok {
		return nil, providers.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = expirationSeconds
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

func (c *memoryCache) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}

func TestCachedProvider_MissThenHit(t *testing.T) {
	inner := new(mockDatasetProvider)
	inner.On("Load", mock.Anything).Return(expectedDataset(), nil).Once()
	cache := newMemoryCache()

	provider := NewCachedProvider(inner, cache, 10*time.Minute, nil)

	first, err := provider.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expectedDataset(), first)
	assert.Equal(t, 600, cache.ttls["dataset:data/prices.json"])

	second, err := provider.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expectedDataset(), second)

	inner.AssertNumberOfCalls(t, "Load", 1)
	assert.Equal(t, "data/prices.json", provider.Describe())
}

func TestCachedProvider_CacheFailureFallsThrough(t *testing.T) {
	inner := new(mockDatasetProvider)
	inner.On("Load", mock.Anything).Return(expectedDataset(), nil)
	cache := newMemoryCache()
	cache.failGet = true

	ds, err := NewCachedProvider(inner, cache, time.Minute, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Services, 2)
}

func TestCachedProvider_CorruptEntryReloads(t *testing.T) {
	inner := new(mockDatasetProvider)
	inner.On("Load", mock.Anything).Return(expectedDataset(), nil).Once()
	cache := newMemoryCache()
	cache.data["dataset:data/prices.json"] = []byte("{not json")

	ds, err := NewCachedProvider(inner, cache, time.Minute, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, ds.Services, 2)
	inner.AssertExpectations(t)
}

func TestCachedProvider_InnerErrorNotCached(t *testing.T) {
	inner := new(mockDatasetProvider)
	inner.On("Load", mock.Anything).Return(nil, errors.New("boom"))
	cache := newMemoryCache()

	_, err := NewCachedProvider(inner, cache, time.Minute, nil).Load(context.Background())
	require.Error(t, err)
	assert.Empty(t, cache.data)
}

func TestCachedProvider_Invalidate(t *testing.T) {
	inner := new(mockDatasetProvider)
	inner.On("Load", mock.Anything).Return(expectedDataset(), nil).Twice()
	cache := newMemoryCache()

	provider := NewCachedProvider(inner, cache, time.Minute, nil)
	_, err := provider.Load(context.Background())
	require.NoError(t, err)

	require.NoError(t, provider.Invalidate(context.Background()))

	_, err = provider.Load(context.Background())
	require.NoError(t, err)
	inner.AssertNumberOfCalls(t, "Load", 2)
}

func TestCachedProvider_CachedEntryNormalized(t *testing.T) {
	inner := new(mockDatasetProvider)
	cache := newMemoryCache()
	cache.data["dataset:data/prices.json"] = []byte(`{"services":[]}`)

	ds, err := NewCachedProvider(inner, cache, time.Minute, nil).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, ds.RegionFactors)
	assert.NotNil(t, ds.Tips)
	inner.AssertNotCalled(t, "Load", mock.Anything)
}
