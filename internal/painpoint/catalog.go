// Package painpoint resolves a free-text market segment to a canonical
// segment and the business pain typical of it.
package painpoint

import (
	_ "embed"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed segments.yaml
var defaultSegments []byte

// Segment is one entry of the segment catalog.
type Segment struct {
	Segmento    string   `yaml:"segmento" json:"segmento" validate:"required"`
	Aliases     []string `yaml:"aliases" json:"aliases"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
	NegKeywords []string `yaml:"neg_keywords,omitempty" json:"neg_keywords,omitempty"`
	Generic     bool     `yaml:"generic,omitempty" json:"generic,omitempty"`
	Dor         string   `yaml:"dor" json:"dor" validate:"required"`
}

// Catalog is the ordered segment list plus the catch-all pain statement.
type Catalog struct {
	GenericDor string    `yaml:"generic_dor" json:"generic_dor" validate:"required"`
	Segments   []Segment `yaml:"segments" json:"segments" validate:"required,min=1,dive"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// DefaultCatalog returns the embedded segment catalog.
func DefaultCatalog() *Catalog {
	defaultOnce.Do(func() {
		c, err := ParseCatalog(defaultSegments)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadCatalog reads and validates a segment catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "painpoint: read %s", path)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return nil, eris.Wrapf(err, "painpoint: load %s", path)
	}
	return c, nil
}

// ParseCatalog decodes and validates segment catalog YAML. Every entry must
// carry a non-empty pain statement.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrap(err, "painpoint: parse yaml")
	}
	if err := validator.New().Struct(&c); err != nil {
		return nil, eris.Wrap(err, "painpoint: invalid catalog")
	}
	if strings.TrimSpace(c.GenericDor) == "" {
		return nil, eris.New("painpoint: generic_dor is blank")
	}
	seen := make(map[string]bool, len(c.Segments))
	for _, s := range c.Segments {
		if strings.TrimSpace(s.Dor) == "" {
			return nil, eris.Errorf("painpoint: segment %q has a blank dor", s.Segmento)
		}
		if seen[s.Segmento] {
			return nil, eris.Errorf("painpoint: duplicate segment %q", s.Segmento)
		}
		seen[s.Segmento] = true
	}
	return &c, nil
}
