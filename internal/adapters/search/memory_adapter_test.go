package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/costestimator/internal/domain/entities"
)

func indexedAdapter(t *testing.T) *MemoryAdapter {
	t.Helper()
	a := NewMemoryAdapter()
	require.NoError(t, a.Reindex(context.Background(), []entities.ServiceRecord{
		{Code: "xray", Name: "Chest X-ray"},
		{Code: "mri", Name: "MRI (no contrast)"},
		{Code: "mri-contrast", Name: "MRI (with contrast)"},
		{Code: "ct", Name: "CT scan"},
		{Code: "lab", Name: "Basic metabolic panel"},
	}))
	return a
}

func codes(services []entities.ServiceRecord) []string {
	out := make([]string, 0, len(services))
	for _, s := range services {
		out = append(out, s.Code)
	}
	return out
}

func TestMemoryAdapter_EmptyQueryListsInOrder(t *testing.T) {
	a := indexedAdapter(t)

	results, err := a.Search(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"xray", "mri", "mri-contrast", "ct", "lab"}, codes(results))
}

func TestMemoryAdapter_Ranking(t *testing.T) {
	a := indexedAdapter(t)

	results, err := a.Search(context.Background(), "MRI", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"mri", "mri-contrast"}, codes(results))

	results, err = a.Search(context.Background(), "contrast", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"mri", "mri-contrast"}, codes(results))

	results, err = a.Search(context.Background(), "ray", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"xray"}, codes(results))

	results, err = a.Search(context.Background(), "panel", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"lab"}, codes(results))
}

func TestMemoryAdapter_Limit(t *testing.T) {
	a := indexedAdapter(t)

	results, err := a.Search(context.Background(), "", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestMemoryAdapter_NoMatch(t *testing.T) {
	a := indexedAdapter(t)

	results, err := a.Search(context.Background(), "dialysis", 10)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}
