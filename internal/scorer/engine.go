package scorer

import (
	"slices"

	"go.uber.org/zap"

	"github.com/sells-group/stack-radar/internal/catalog"
	"github.com/sells-group/stack-radar/internal/config"
	"github.com/sells-group/stack-radar/internal/model"
	"github.com/sells-group/stack-radar/internal/signals"
)

// Engine scores profiles against a shared, read-only catalog. It holds no
// per-request state and is safe for concurrent use.
type Engine struct {
	cat *catalog.Catalog
	cfg config.ScoringConfig
}

// New creates an Engine. A nil catalog selects the embedded one.
func New(cat *catalog.Catalog, cfg config.ScoringConfig) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Engine{cat: cat, cfg: cfg}
}

// Catalog returns the catalog the engine scores against.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// Evaluation is the full scoring trace of one profile.
type Evaluation struct {
	Signals *signals.Signals

	// ERP and Fiscal hold every scored candidate, excluded ones included,
	// before family collapse.
	ERP    []ScoredCandidate
	Fiscal []ScoredCandidate

	ERPWinner  string
	ERPTop3    []ScoredCandidate
	FiscalTop3 []ScoredCandidate
}

// Evaluate derives signals, scores both catalogs and ranks the results.
func (e *Engine) Evaluate(p model.CompanyProfile) *Evaluation {
	s := signals.Derive(p)
	criteria := criteriaPanel(s)

	ev := &Evaluation{Signals: s}

	ev.ERP = make([]ScoredCandidate, 0, len(e.cat.ERP))
	for i := range e.cat.ERP {
		ev.ERP = append(ev.ERP, e.scoreERP(&e.cat.ERP[i], s, criteria))
	}
	ev.ERPTop3 = top3(collapseFamilies(ev.ERP, s))
	annotateGaps(ev.ERPTop3, e.cfg.Ranking)
	if len(ev.ERPTop3) > 0 {
		ev.ERPWinner = ev.ERPTop3[0].Name
	}

	erp := newERPContext(ev.ERPWinner)
	fiscalCriteria := append(slices.Clone(criteria), "ERP de referência: "+erpReference(ev.ERPWinner))
	fiscal := catalog.Augment(e.cat.Fiscal, ev.ERPWinner)
	ev.Fiscal = make([]ScoredCandidate, 0, len(fiscal))
	for i := range fiscal {
		ev.Fiscal = append(ev.Fiscal, e.scoreFiscal(&fiscal[i], s, erp, fiscalCriteria))
	}
	ev.FiscalTop3 = top3(collapseFamilies(ev.Fiscal, s))
	annotateGaps(ev.FiscalTop3, e.cfg.Ranking)

	zap.L().Debug("scorer: profile ranked",
		zap.String("empresa", p.Empresa),
		zap.String("erp_winner", ev.ERPWinner),
		zap.Int("employees", s.EmployeesReported),
		zap.Int64("revenue", s.RevenueReported),
		zap.Int("erp_ranked", len(ev.ERPTop3)),
		zap.Int("fiscal_ranked", len(ev.FiscalTop3)),
	)

	return ev
}

const noERPRanked = "nenhum ERP elegível no ranking"

func erpReference(name string) string {
	if name == "" {
		return noERPRanked
	}
	return name
}

// ViewOptions controls what a CandidateView exposes.
type ViewOptions struct {
	IncludeBreakdown bool
}

// CandidateView is the caller-facing rendering of a ranked candidate.
type CandidateView struct {
	Name          string     `json:"name"`
	ConfidencePct int        `json:"confidence_pct"`
	WhyShort      string     `json:"whyShort"`
	Why           []string   `json:"why"`
	PainPoints    []string   `json:"pain_points"`
	Criteria      []string   `json:"criteria"`
	WhyNotFirst   string     `json:"why_not_first,omitempty"`
	WhyNotSecond  string     `json:"why_not_second,omitempty"`
	RawScore      *float64   `json:"raw_score,omitempty"`
	Breakdown     *Breakdown `json:"breakdown,omitempty"`
}

// Result is the ranked output for one profile.
type Result struct {
	ERPTop3    []CandidateView `json:"erp_top3"`
	FiscalTop3 []CandidateView `json:"fiscal_top3"`
}

// BuildTop3 ranks the ERP and fiscal candidates for p. It never fails;
// missing profile data only weakens the ranking.
func (e *Engine) BuildTop3(p model.CompanyProfile, opts ViewOptions) Result {
	return e.Evaluate(p).Result(opts)
}

// Result renders the ranked lists.
func (ev *Evaluation) Result(opts ViewOptions) Result {
	return Result{
		ERPTop3:    views(ev.ERPTop3, opts),
		FiscalTop3: views(ev.FiscalTop3, opts),
	}
}

func views(ranked []ScoredCandidate, opts ViewOptions) []CandidateView {
	out := make([]CandidateView, 0, len(ranked))
	for _, c := range ranked {
		v := CandidateView{
			Name:          c.Name,
			ConfidencePct: c.ConfidencePct,
			WhyShort:      c.WhyShort,
			Why:           slices.Clone(c.Why),
			PainPoints:    slices.Clone(c.PainPoints),
			Criteria:      slices.Clone(c.Criteria),
			WhyNotFirst:   c.WhyNotFirst,
			WhyNotSecond:  c.WhyNotSecond,
		}
		if opts.IncludeBreakdown {
			raw := c.RawScore
			bd := c.Breakdown
			v.RawScore = &raw
			v.Breakdown = &bd
		}
		out = append(out, v)
	}
	return out
}
