// Package signals derives the flat bag of boolean and numeric facts the
// vendor scorers read from a company profile.
package signals

import (
	"github.com/sells-group/stack-radar/internal/model"
	"github.com/sells-group/stack-radar/internal/textnorm"
)

// SAPCorePreference is the SAP core generation the profile text leans to.
type SAPCorePreference string

const (
	SAPPreferNone   SAPCorePreference = ""
	SAPPreferS4HANA SAPCorePreference = "s4hana"
	SAPPreferECC    SAPCorePreference = "ecc"
)

// TOTVSPreference is the TOTVS line the profile text leans to.
type TOTVSPreference string

const (
	TOTVSPreferProtheus TOTVSPreference = "protheus"
	TOTVSPreferRM       TOTVSPreference = "rm"
)

// Signals is derived once per request and shared read-only by every scorer.
type Signals struct {
	EmployeesReported int   `json:"employees_reported"`
	RevenueReported   int64 `json:"revenue_reported"`

	HasSap    bool `json:"has_sap"`
	HasAzure  bool `json:"has_azure"`
	HasTotvs  bool `json:"has_totvs"`
	HasOracle bool `json:"has_oracle"`
	Ecom      bool `json:"ecom"`

	Manuf      bool `json:"manuf"`
	Varejo     bool `json:"varejo"`
	Financeiro bool `json:"financeiro"`
	Saude      bool `json:"saude"`
	Energia    bool `json:"energia"`
	Servicos   bool `json:"servicos"`
	Alimentos  bool `json:"alimentos"`
	Educacao   bool `json:"educacao"`

	Multiempresa  bool `json:"multiempresa"`
	Multinacional bool `json:"multinacional"`
	SetorRegulado bool `json:"setor_regulado"`
	CloudSaaS     bool `json:"cloud_saas"`

	SAPCorePreference SAPCorePreference `json:"sap_core_preference,omitempty"`
	TOTVSPreference   TOTVSPreference   `json:"totvs_preference"`

	// FullText includes the profile's own vendor guesses; SafeText does not.
	FullText    string `json:"-"`
	SafeText    string `json:"-"`
	SegmentText string `json:"-"`

	// DeclaredERP and DeclaredFiscal are the folded vendor hint fields.
	DeclaredERP    string `json:"-"`
	DeclaredFiscal string `json:"-"`

	Segmento string           `json:"-"`
	News     []model.NewsItem `json:"-"`
}

// Derive builds the Signals for p. It never fails: missing fields simply
// leave their signals false or zero.
func Derive(p model.CompanyProfile) *Signals {
	s := &Signals{
		FullText:       p.SearchText(true),
		SafeText:       p.SearchText(false),
		SegmentText:    textnorm.Fold(p.Segmento + " " + p.Subsegmento),
		DeclaredERP:    textnorm.Fold(p.ERPAtualOuProvavel),
		DeclaredFiscal: textnorm.Fold(p.SolucaoFiscalOuProvavel),
		Segmento:       p.Segmento,
		News:           p.Noticias,
	}

	for _, r := range rules {
		if r.pattern.MatchString(s.text(r.source)) {
			*r.flag(s) = true
		}
	}

	s.EmployeesReported = textnorm.ParseHeadcount(p.Funcionarios)
	s.RevenueReported = textnorm.ParseMoneyAmount(p.Faturamento)
	s.SetorRegulado = s.Financeiro || s.Saude || s.Energia
	s.SAPCorePreference = inferSAPCore(s.FullText)
	s.TOTVSPreference = inferTOTVS(s)

	return s
}

func (s *Signals) text(src Source) string {
	switch src {
	case SourceSegment:
		return s.SegmentText
	case SourceFull:
		return s.FullText
	default:
		return s.SafeText
	}
}

// ComplexityIndex rates the operation from 0 (simple) to 10 (complex) using
// size, revenue and structural flags.
func (s *Signals) ComplexityIndex() int {
	idx := 0
	switch {
	case s.EmployeesReported >= 1000:
		idx += 2
	case s.EmployeesReported >= 300:
		idx++
	}
	switch {
	case s.RevenueReported >= 500_000_000:
		idx += 2
	case s.RevenueReported >= 100_000_000:
		idx++
	}
	if s.Multinacional {
		idx += 2
	}
	if s.Multiempresa {
		idx++
	}
	if s.SetorRegulado {
		idx += 2
	}
	if s.CloudSaaS {
		idx++
	}
	if idx > 10 {
		idx = 10
	}
	return idx
}

func inferSAPCore(full string) SAPCorePreference {
	switch {
	case s4Re.MatchString(full):
		return SAPPreferS4HANA
	case eccRe.MatchString(full):
		return SAPPreferECC
	default:
		return SAPPreferNone
	}
}

func inferTOTVS(s *Signals) TOTVSPreference {
	if s.Educacao || s.Saude || hrRe.MatchString(s.SegmentText) || rmRe.MatchString(s.FullText) {
		return TOTVSPreferRM
	}
	return TOTVSPreferProtheus
}
