package search

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/domain/repositories"
)

// MemoryAdapter answers service searches from an in-process index.
// Matches are case-insensitive substrings of the name or code; prefix matches rank first.
type MemoryAdapter struct {
	mu       sync.RWMutex
	services []entities.ServiceRecord
}

var _ repositories.ServiceSearchRepository = (*MemoryAdapter)(nil)

// NewMemoryAdapter creates an empty in-memory index
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{}
}

// Reindex replaces the indexed services
func (a *MemoryAdapter) Reindex(ctx context.Context, services []entities.ServiceRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.services = append([]entities.ServiceRecord{}, services...)
	return nil
}

// Search returns up to limit services matching query. An empty query lists services in dataset order.
func (a *MemoryAdapter) Search(ctx context.Context, query string, limit int) ([]entities.ServiceRecord, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(query))

	type match struct {
		svc    entities.ServiceRecord
		rank   int
		offset int
	}
	matches := []match{}
	for i, svc := range a.services {
		rank, ok := matchRank(needle, svc)
		if !ok {
			continue
		}
		matches = append(matches, match{svc: svc, rank: rank, offset: i})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].rank != matches[j].rank {
			return matches[i].rank < matches[j].rank
		}
		return matches[i].offset < matches[j].offset
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]entities.ServiceRecord, 0, len(matches))
	for _, m := range matches {
		results = append(results, m.svc)
	}
	return results, nil
}

// matchRank: 0 exact code, 1 name prefix, 2 word prefix, 3 substring
func matchRank(needle string, svc entities.ServiceRecord) (int, bool) {
	if needle == "" {
		return 0, true
	}
	code := strings.ToLower(svc.Code)
	name := strings.ToLower(svc.Name)

	switch {
	case code == needle:
		return 0, true
	case strings.HasPrefix(name, needle) || strings.HasPrefix(code, needle):
		return 1, true
	}
	for _, word := range strings.FieldsFunc(name, isSeparator) {
		if strings.HasPrefix(word, needle) {
			return 2, true
		}
	}
	if strings.Contains(name, needle) || strings.Contains(code, needle) {
		return 3, true
	}
	return 0, false
}

func isSeparator(r rune) bool {
	return r == ' ' || r == '(' || r == ')' || r == '-' || r == '/' || r == ','
}
