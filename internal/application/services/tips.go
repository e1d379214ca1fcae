package services

import "github.com/zatekoja/costestimator/internal/domain/entities"

// ResolveTips returns tips[key] when present, else the general list, else an empty list.
// A key that is present with an empty list is returned as-is; a nil list counts as absent.
func ResolveTips(key string, tips entities.TipsLibrary) []string {
	if key != "" {
		if list, ok := tips[key]; ok && list != nil {
			return append([]string{}, list...)
		}
	}
	if list, ok := tips[entities.DefaultTipKey]; ok && list != nil {
		return append([]string{}, list...)
	}
	return []string{}
}
