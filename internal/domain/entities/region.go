package entities

import (
	"regexp"
	"strings"
)

// Region is a coarse geographic bucket derived from a ZIP code's leading digit
type Region string

const (
	RegionNortheast   Region = "northeast"
	RegionMidAtlantic Region = "midatlantic"
	RegionSoutheast   Region = "southeast"
	RegionMidwest     Region = "midwest"
	RegionSouthwest   Region = "southwest"
	RegionMountain    Region = "mountain"
	RegionWest        Region = "west"

	// RegionNational is used when the leading digit has no mapping
	RegionNational Region = "national"
)

var zipRegions = map[byte]Region{
	'0': RegionNortheast,
	'1': RegionNortheast,
	'2': RegionMidAtlantic,
	'3': RegionSoutheast,
	'4': RegionMidwest,
	'5': RegionMidwest,
	'6': RegionMidwest,
	'7': RegionSouthwest,
	'8': RegionMountain,
	'9': RegionWest,
}

var zipPattern = regexp.MustCompile(`^[0-9]{5}$`)

// IsValidZIP reports whether zip is exactly five decimal digits
func IsValidZIP(zip string) bool {
	return zipPattern.MatchString(zip)
}

// ResolveRegion maps a ZIP code to its region using only the first character.
func ResolveRegion(zip string) Region {
	if zip == "" {
		return RegionNational
	}
	if region, ok := zipRegions[zip[0]]; ok {
		return region
	}
	return RegionNational
}

// Label returns the region name with its first letter upper-cased
func (r Region) Label() string {
	if r == "" {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// RegionFactorTable maps a region name to its cost multiplier
type RegionFactorTable map[string]float64

// Factor returns the multiplier for region, or 1.0 when the table has none
func (t RegionFactorTable) Factor(region Region) float64 {
	if f, ok := t[string(region)]; ok {
		return f
	}
	return 1.0
}
