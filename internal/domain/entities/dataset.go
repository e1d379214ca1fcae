package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"time"

	apperrors "github.com/zatekoja/costestimator/pkg/errors"
)

// Dataset is the decoded price document as published by a data source
type Dataset struct {
	Services      []ServiceRecord     `json:"services" yaml:"services" toml:"services"`
	RegionFactors map[string]float64  `json:"regionFactors" yaml:"regionFactors" toml:"regionFactors"`
	Tips          map[string][]string `json:"tips" yaml:"tips" toml:"tips"`
}

// TipsLibrary maps a tip key to its ordered advisory strings
type TipsLibrary map[string][]string

// Catalog is the read-only view of a loaded dataset.
// It is built once by NewCatalog and never mutated afterwards.
type Catalog struct {
	services      []ServiceRecord
	byCode        map[string]int
	regionFactors RegionFactorTable
	tips          TipsLibrary
	source        string
	loadedAt      time.Time
	version       string
}

// NewCatalog validates ds and builds an immutable catalog from it.
// Any invalid record fails the whole load with a DATA_LOAD error.
func NewCatalog(ds *Dataset, source string) (*Catalog, error) {
	if ds == nil {
		return nil, apperrors.NewDataLoadError("dataset is empty", nil)
	}

	c := &Catalog{
		services:      make([]ServiceRecord, 0, len(ds.Services)),
		byCode:        make(map[string]int, len(ds.Services)),
		regionFactors: make(RegionFactorTable, len(ds.RegionFactors)),
		tips:          make(TipsLibrary, len(ds.Tips)),
		source:        source,
		loadedAt:      time.Now(),
	}

	for i, svc := range ds.Services {
		if svc.Code == "" {
			return nil, apperrors.NewDataLoadError(fmt.Sprintf("service at index %d: missing code", i), nil)
		}
		if _, dup := c.byCode[svc.Code]; dup {
			return nil, apperrors.NewDataLoadError(fmt.Sprintf("service at index %d: duplicate code %q", i, svc.Code), nil)
		}
		if err := validateRange(svc.Base); err != nil {
			return nil, apperrors.NewDataLoadError(fmt.Sprintf("service %q", svc.Code), err)
		}
		c.byCode[svc.Code] = len(c.services)
		c.services = append(c.services, svc)
	}

	for region, factor := range ds.RegionFactors {
		if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
			return nil, apperrors.NewDataLoadError(fmt.Sprintf("region %q: factor must be positive, got %v", region, factor), nil)
		}
		c.regionFactors[region] = factor
	}

	for key, list := range ds.Tips {
		// null in the document means no tips for the key
		if list == nil {
			continue
		}
		c.tips[key] = append([]string{}, list...)
	}

	version, err := c.fingerprint()
	if err != nil {
		return nil, apperrors.NewDataLoadError("failed to fingerprint dataset", err)
	}
	c.version = version

	return c, nil
}

// fingerprint hashes the catalog contents; map keys marshal in sorted order
func (c *Catalog) fingerprint() (string, error) {
	data, err := json.Marshal(Dataset{
		Services:      c.services,
		RegionFactors: c.regionFactors,
		Tips:          c.tips,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8]), nil
}

func validateRange(r PriceRange) error {
	for _, v := range []float64{r.Low, r.High} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("base range must be finite")
		}
	}
	if r.Low < 0 || r.High < 0 {
		return fmt.Errorf("base range must be non-negative, got %v-%v", r.Low, r.High)
	}
	if r.Low > r.High {
		return fmt.Errorf("base low %v exceeds high %v", r.Low, r.High)
	}
	return nil
}

// Service returns the service with an exactly matching code
func (c *Catalog) Service(code string) (ServiceRecord, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return ServiceRecord{}, false
	}
	return c.services[i], true
}

// Services returns a copy of all services in dataset order
func (c *Catalog) Services() []ServiceRecord {
	return append([]ServiceRecord{}, c.services...)
}

// ServiceCount returns the number of services
func (c *Catalog) ServiceCount() int {
	return len(c.services)
}

// RegionFactors returns the loaded region factor table
func (c *Catalog) RegionFactors() RegionFactorTable {
	out := make(RegionFactorTable, len(c.regionFactors))
	for k, v := range c.regionFactors {
		out[k] = v
	}
	return out
}

// RegionFactor returns the loaded factor for region, defaulting to 1.0
func (c *Catalog) RegionFactor(region Region) float64 {
	return c.regionFactors.Factor(region)
}

// Tips returns the tips library. Callers must not modify the returned lists.
func (c *Catalog) Tips() TipsLibrary {
	return c.tips
}

// Source describes where the catalog was loaded from
func (c *Catalog) Source() string {
	return c.source
}

// Version identifies the catalog contents. Equal datasets share a version on every instance.
func (c *Catalog) Version() string {
	return c.version
}

// LoadedAt returns when the catalog was built
func (c *Catalog) LoadedAt() time.Time {
	return c.loadedAt
}
