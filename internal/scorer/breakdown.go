package scorer

import "math"

// Component names one term of a score breakdown.
type Component string

const (
	CompEvidence          Component = "evidence"
	CompSizeFit           Component = "size_fit"
	CompSegmentFit        Component = "segment_fit"
	CompBrandSignals      Component = "brand_signals"
	CompSynergy           Component = "synergy"
	CompFamilyRules       Component = "family_rules"
	CompMismatchPenalties Component = "mismatch_penalties"
	CompCostPenalties     Component = "cost_penalties"
)

// Components lists every breakdown component in display order.
var Components = []Component{
	CompEvidence,
	CompSizeFit,
	CompSegmentFit,
	CompBrandSignals,
	CompSynergy,
	CompFamilyRules,
	CompMismatchPenalties,
	CompCostPenalties,
}

var componentLabels = map[Component]string{
	CompEvidence:          "evidências em notícias",
	CompSizeFit:           "aderência de porte",
	CompSegmentFit:        "aderência ao segmento",
	CompBrandSignals:      "sinais de marca",
	CompSynergy:           "sinergia com o ERP",
	CompFamilyRules:       "preferência de linha de produto",
	CompMismatchPenalties: "penalidades de desalinhamento",
	CompCostPenalties:     "relação custo-porte",
}

// Label returns the Portuguese phrase used in comparisons.
func (c Component) Label() string {
	if l, ok := componentLabels[c]; ok {
		return l
	}
	return string(c)
}

// Breakdown is the fixed set of score components of one candidate.
// MismatchPenalties and CostPenalties hold magnitudes and are subtracted;
// FamilyRules is signed.
type Breakdown struct {
	Evidence          float64 `json:"evidence"`
	SizeFit           float64 `json:"size_fit"`
	SegmentFit        float64 `json:"segment_fit"`
	BrandSignals      float64 `json:"brand_signals"`
	Synergy           float64 `json:"synergy"`
	FamilyRules       float64 `json:"family_rules"`
	MismatchPenalties float64 `json:"mismatch_penalties"`
	CostPenalties     float64 `json:"cost_penalties"`
}

// Total is the pre-clamp raw score.
func (b Breakdown) Total() float64 {
	return b.Evidence + b.SizeFit + b.SegmentFit + b.BrandSignals + b.Synergy +
		b.FamilyRules - b.MismatchPenalties - b.CostPenalties
}

// Contribution returns the signed amount c adds to Total.
func (b Breakdown) Contribution(c Component) float64 {
	switch c {
	case CompEvidence:
		return b.Evidence
	case CompSizeFit:
		return b.SizeFit
	case CompSegmentFit:
		return b.SegmentFit
	case CompBrandSignals:
		return b.BrandSignals
	case CompSynergy:
		return b.Synergy
	case CompFamilyRules:
		return b.FamilyRules
	case CompMismatchPenalties:
		return -b.MismatchPenalties
	case CompCostPenalties:
		return -b.CostPenalties
	default:
		return 0
	}
}

func clampScore(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
