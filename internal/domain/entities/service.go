package entities

// DefaultTipKey selects the general tips list when a service names none
const DefaultTipKey = "general"

// PriceRange is an unscaled national low/high estimate in dollars
type PriceRange struct {
	Low  float64 `json:"low" yaml:"low" toml:"low"`
	High float64 `json:"high" yaml:"high" toml:"high"`
}

// ServiceRecord represents a priced medical service from the dataset
type ServiceRecord struct {
	Code   string     `json:"code" yaml:"code" toml:"code" db:"code"`
	Name   string     `json:"name" yaml:"name" toml:"name" db:"name"`
	Base   PriceRange `json:"base" yaml:"base" toml:"base"`
	TipKey string     `json:"tipKey,omitempty" yaml:"tipKey,omitempty" toml:"tipKey,omitempty" db:"tip_key"`
}

// EffectiveTipKey returns the tip key, falling back to DefaultTipKey
func (s ServiceRecord) EffectiveTipKey() string {
	if s.TipKey == "" {
		return DefaultTipKey
	}
	return s.TipKey
}
