// Package catalog holds the static ERP and fiscal-compliance vendor reference
// data. A Catalog is loaded once and shared read-only by every request.
package catalog

import (
	_ "embed"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/stack-radar/internal/textnorm"
)

//go:embed vendors.yaml
var defaultVendors []byte

// Tier is the market segment a vendor product is sold into.
type Tier string

const (
	TierEnterprise Tier = "enterprise"
	TierMid        Tier = "mid"
	TierSMB        Tier = "smb"
	TierVaria      Tier = "varia"
)

// Range is an inclusive [Min, Max] band. Max 0 means unbounded.
type Range struct {
	Min int64 `yaml:"min" json:"min" validate:"gte=0"`
	Max int64 `yaml:"max" json:"max" validate:"gte=0"`
}

// Contains reports whether v lies inside the band.
func (r Range) Contains(v int64) bool {
	if v < r.Min {
		return false
	}
	return r.Max == 0 || v <= r.Max
}

// Vendor is one candidate product in a catalog.
type Vendor struct {
	ID       string   `yaml:"id" json:"id" validate:"required"`
	Name     string   `yaml:"name" json:"name" validate:"required"`
	Tier     Tier     `yaml:"tier" json:"tier" validate:"required,oneof=enterprise mid smb varia"`
	Family   string   `yaml:"family,omitempty" json:"family,omitempty"`
	Variant  string   `yaml:"variant,omitempty" json:"variant,omitempty" validate:"required_with=Family"`
	SizeHint *Range   `yaml:"size_hint,omitempty" json:"size_hint,omitempty"`
	RevHint  *Range   `yaml:"rev_hint,omitempty" json:"rev_hint,omitempty"`
	Tags     []string `yaml:"tags" json:"tags"`
	Keywords []string `yaml:"keywords" json:"keywords"`

	// Synthetic marks request-scoped entries injected by Augment.
	Synthetic bool `yaml:"-" json:"synthetic,omitempty"`

	terms []string
	tags  map[string]bool
}

// Terms returns the folded display name followed by the folded keywords.
func (v *Vendor) Terms() []string { return v.terms }

// HasTag reports whether the vendor declares tag.
func (v *Vendor) HasTag(tag string) bool { return v.tags[tag] }

// NameHas reports whether the folded display name contains any of subs.
func (v *Vendor) NameHas(subs ...string) bool {
	name := textnorm.Fold(v.Name)
	for _, s := range subs {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

func (v *Vendor) prepare() {
	v.terms = v.terms[:0]
	if n := textnorm.Fold(v.Name); n != "" {
		v.terms = append(v.terms, n)
	}
	for _, k := range v.Keywords {
		if f := textnorm.Fold(k); f != "" {
			v.terms = append(v.terms, f)
		}
	}
	v.tags = make(map[string]bool, len(v.Tags))
	for _, t := range v.Tags {
		v.tags[strings.ToLower(t)] = true
	}
}

// Catalog is the full set of ERP and fiscal candidates.
type Catalog struct {
	ERP    []Vendor `yaml:"erp" json:"erp"`
	Fiscal []Vendor `yaml:"fiscal" json:"fiscal"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It panics if the embedded data is
// invalid, which the package tests rule out.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultVendors)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadFile reads and validates a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: read %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: load %s", path)
	}
	return c, nil
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrap(err, "catalog: parse yaml")
	}
	if len(c.ERP) == 0 || len(c.Fiscal) == 0 {
		return nil, eris.New("catalog: erp and fiscal lists must both be non-empty")
	}

	validate := validator.New()
	seen := make(map[string]bool)
	for _, list := range [][]Vendor{c.ERP, c.Fiscal} {
		for i := range list {
			v := &list[i]
			if err := validate.Struct(v); err != nil {
				return nil, eris.Wrapf(err, "catalog: vendor %q", v.ID)
			}
			if seen[v.ID] {
				return nil, eris.Errorf("catalog: duplicate vendor id %q", v.ID)
			}
			seen[v.ID] = true
			v.prepare()
		}
	}
	return &c, nil
}
