package scorer

import (
	"math"
	"slices"

	"github.com/sells-group/stack-radar/internal/catalog"
)

// ScoredCandidate is the outcome of scoring one vendor for one profile.
type ScoredCandidate struct {
	Vendor     *catalog.Vendor `json:"-"`
	Name       string          `json:"name"`
	RawScore   float64         `json:"raw_score"`
	Breakdown  Breakdown       `json:"breakdown"`
	Why        []string        `json:"why"`
	WhyShort   string          `json:"whyShort"`
	PainPoints []string        `json:"pain_points"`
	Criteria   []string        `json:"criteria"`

	// Set by ranking.
	ConfidencePct int    `json:"confidence_pct,omitempty"`
	WhyNotFirst   string `json:"why_not_first,omitempty"`
	WhyNotSecond  string `json:"why_not_second,omitempty"`

	highlights []string
}

func newCandidate(v *catalog.Vendor) ScoredCandidate {
	return ScoredCandidate{
		Vendor:     v,
		Name:       v.Name,
		Why:        []string{},
		PainPoints: []string{},
		Criteria:   []string{},
	}
}

// Excluded reports whether a hard filter removed the candidate.
func (c ScoredCandidate) Excluded() bool {
	return math.IsInf(c.RawScore, -1)
}

func (c *ScoredCandidate) exclude(reason string) {
	c.RawScore = math.Inf(-1)
	c.addWhy(reason)
}

func (c *ScoredCandidate) addWhy(s string) {
	if s != "" && !slices.Contains(c.Why, s) {
		c.Why = append(c.Why, s)
	}
}

func (c *ScoredCandidate) addPain(s string) {
	if s != "" && !slices.Contains(c.PainPoints, s) {
		c.PainPoints = append(c.PainPoints, s)
	}
}

// highlight records a short phrase for the one-line summary.
func (c *ScoredCandidate) highlight(s string) {
	if !slices.Contains(c.highlights, s) {
		c.highlights = append(c.highlights, s)
	}
}

// finish clamps the raw score and fills the summary fields.
func (c *ScoredCandidate) finish(criteria []string) {
	c.RawScore = clampScore(round1(c.Breakdown.Total()))
	c.WhyShort = summarize(c.highlights)
	c.Criteria = slices.Clone(criteria)
}
