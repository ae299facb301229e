package scorer

import (
	"fmt"

	"github.com/sells-group/stack-radar/internal/catalog"
	"github.com/sells-group/stack-radar/internal/signals"
	"github.com/sells-group/stack-radar/internal/textnorm"
)

// Family IDs with collapse rules.
const (
	familySAPCore = "sap_core"
	familyTOTVS   = "totvs"
)

// segmentRule awards pts when the profile signal holds and the vendor
// declares any of tags.
type segmentRule struct {
	on    func(*signals.Signals) bool
	tags  []string
	pts   float64
	label string
}

func (e *Engine) erpSegmentRules() []segmentRule {
	w := e.cfg.ERP
	return []segmentRule{
		{func(s *signals.Signals) bool { return s.Manuf }, []string{"manufatura"}, w.SegmentManuf, "manufatura"},
		{func(s *signals.Signals) bool { return s.Varejo }, []string{"varejo", "distribuicao"}, w.SegmentVarejo, "varejo e distribuição"},
		{func(s *signals.Signals) bool { return s.Ecom }, []string{"ecommerce"}, w.SegmentEcom, "e-commerce"},
		{func(s *signals.Signals) bool { return s.Servicos }, []string{"servicos"}, w.SegmentServicos, "serviços"},
		{func(s *signals.Signals) bool { return s.Alimentos }, []string{"alimentos"}, w.SegmentAlimentos, "alimentos e bebidas"},
		{func(s *signals.Signals) bool { return s.Financeiro }, []string{"financeiro"}, w.SegmentFinanceiro, "serviços financeiros"},
		{func(s *signals.Signals) bool { return s.Saude }, []string{"saude"}, w.SegmentSaude, "saúde"},
		{func(s *signals.Signals) bool { return s.Educacao }, []string{"educacao"}, w.SegmentEducacao, "educação"},
		{func(s *signals.Signals) bool { return s.Energia }, []string{"energia"}, w.SegmentEnergia, "energia e utilities"},
		{func(s *signals.Signals) bool { return s.SetorRegulado }, []string{"regulado"}, w.SegmentRegulado, "setores regulados"},
		{func(s *signals.Signals) bool { return s.Multiempresa }, []string{"multiempresa"}, w.MultiEntityFit, "operação multiempresa"},
		{func(s *signals.Signals) bool { return s.CloudSaaS }, []string{"cloud"}, w.CloudFit, "estratégia cloud/SaaS"},
		{func(s *signals.Signals) bool { return s.HasAzure }, []string{"azure"}, w.AzureFit, "ecossistema Microsoft/Azure"},
	}
}

func applySegmentRules(c *ScoredCandidate, s *signals.Signals, rules []segmentRule) {
	for _, r := range rules {
		if !r.on(s) || !hasAnyTag(c.Vendor, r.tags...) {
			continue
		}
		c.Breakdown.SegmentFit += r.pts
		c.addWhy(fmt.Sprintf("Aderência a %s", r.label))
		c.highlight("aderência a " + r.label)
	}
}

func hasAnyTag(v *catalog.Vendor, tags ...string) bool {
	for _, t := range tags {
		if v.HasTag(t) {
			return true
		}
	}
	return false
}

// sizeWeights is the size-fit scale of one scorer.
type sizeWeights struct {
	inBand, partial, tierBonus, revenue float64
}

// applySizeFit scores headcount against the vendor band, the tier against
// the headcount extremes and revenue against the revenue band.
func (e *Engine) applySizeFit(c *ScoredCandidate, s *signals.Signals, w sizeWeights) {
	v := c.Vendor
	th := e.cfg.Thresholds
	emp := int64(s.EmployeesReported)

	if emp > 0 && v.SizeHint != nil {
		if v.SizeHint.Contains(emp) {
			c.Breakdown.SizeFit += w.inBand
			c.addWhy(fmt.Sprintf("Porte (~%s funcionários) dentro da faixa típica do produto", textnorm.FormatInt(emp)))
			c.highlight("porte compatível")
		} else if pts := partialFit(*v.SizeHint, emp, w.partial); pts > 0 {
			c.Breakdown.SizeFit += pts
			c.addWhy(fmt.Sprintf("Porte (~%s funcionários) próximo da faixa típica do produto", textnorm.FormatInt(emp)))
		}
	}

	switch {
	case s.EmployeesReported >= th.EnterpriseHeadcount && v.Tier == catalog.TierEnterprise:
		c.Breakdown.SizeFit += w.tierBonus
		c.addWhy("Grande porte alinhado a produto enterprise")
	case s.EmployeesReported > 0 && s.EmployeesReported < th.SMBHeadcount && v.Tier == catalog.TierSMB:
		c.Breakdown.SizeFit += w.tierBonus
		c.addWhy("Pequeno porte alinhado a produto para PMEs")
	}

	if s.RevenueReported > 0 && v.RevHint != nil && v.RevHint.Contains(s.RevenueReported) {
		c.Breakdown.SizeFit += w.revenue
		c.addWhy(fmt.Sprintf("Faturamento (%s) na faixa atendida", textnorm.FormatBRL(s.RevenueReported)))
		c.highlight("faturamento na faixa atendida")
	}
}

// partialFit scales limit down by the normalized distance of emp from band.
func partialFit(band catalog.Range, emp int64, limit float64) float64 {
	var dist float64
	switch {
	case emp < band.Min && band.Min > 0:
		dist = float64(band.Min-emp) / float64(band.Min)
	case band.Max > 0 && emp > band.Max:
		dist = float64(emp-band.Max) / float64(band.Max)
	default:
		return 0
	}
	pts := limit * (1 - dist)
	if pts <= 0 {
		return 0
	}
	return round1(pts)
}

func (e *Engine) scoreERP(v *catalog.Vendor, s *signals.Signals, criteria []string) ScoredCandidate {
	w := e.cfg.ERP
	th := e.cfg.Thresholds
	c := newCandidate(v)
	b := &c.Breakdown

	// Hard filter.
	if s.Financeiro && v.NameHas("business one", "business central", "omie", "tiny") {
		c.exclude("Excluído: produto de PME sem aderência a compliance financeiro regulado")
		c.Criteria = append(c.Criteria, criteria...)
		return c
	}

	// Evidence.
	strong := HasStrongNewsFor(v, s)
	if strong {
		b.Evidence += w.EvidenceStrong
		c.addWhy(fmt.Sprintf("Notícia recente indica adoção de %s", v.Name))
		c.highlight("evidência forte de adoção em notícias")
	}
	if n := CountVendorEvidence(v, s); n > 0 {
		b.Evidence += mentionPoints(n, w.EvidenceMentions)
		c.addWhy(fmt.Sprintf("%s citado em %d notícia(s) recente(s)", v.Name, n))
		c.highlight("menções em notícias recentes")
	}

	// Size fit.
	e.applySizeFit(&c, s, sizeWeights{w.SizeFitInBand, w.SizeFitPartial, w.TierSizeBonus, w.RevenueFit})
	if s.Multinacional && hasAnyTag(v, "global", "multiempresa") {
		b.SizeFit += w.GlobalFit
		c.addWhy("Suporte nativo a operação multinacional")
		c.highlight("suporte a operação multinacional")
	}

	// Segment fit.
	applySegmentRules(&c, s, e.erpSegmentRules())

	// Brand signals.
	switch {
	case s.HasSap && v.NameHas("sap"):
		b.BrandSignals += w.BrandSAP
		c.addWhy("Menções ao ecossistema SAP no perfil")
		c.highlight("sinais do ecossistema SAP")
	case s.HasTotvs && v.NameHas("totvs", "protheus"):
		b.BrandSignals += w.BrandTOTVS
		c.addWhy("Menções ao ecossistema TOTVS no perfil")
		c.highlight("sinais do ecossistema TOTVS")
	case s.HasOracle && v.NameHas("oracle", "netsuite"):
		b.BrandSignals += w.BrandOracle
		c.addWhy("Menções ao ecossistema Oracle no perfil")
		c.highlight("sinais do ecossistema Oracle")
	}
	if s.DeclaredERP != "" && textnorm.ContainsAnyTerm(s.DeclaredERP, v.Terms()...) {
		b.BrandSignals += w.DeclaredHint
		c.addWhy(fmt.Sprintf("Perfil aponta %s como ERP atual ou provável", v.Name))
		c.highlight("ERP declarado no perfil")
	}

	// Mismatch penalties.
	if v.Family == familyTOTVS && !strong &&
		(s.Multinacional || s.SetorRegulado ||
			s.EmployeesReported >= th.TOTVSMismatchHeadcount || s.RevenueReported >= th.MismatchRevenue) {
		b.MismatchPenalties += w.TOTVSMismatch
		c.addWhy("Escala ou complexidade acima do encaixe típico da TOTVS, sem evidência direta")
		c.addPain("Escala e complexidade podem exigir customizações pesadas")
	}
	if v.Tier == catalog.TierSMB &&
		(s.EmployeesReported >= th.SMBHeadcount || s.RevenueReported >= th.MismatchRevenue) {
		b.MismatchPenalties += w.SMBMismatch
		c.addWhy("Porte da empresa acima do público-alvo do produto")
		c.addPain("Porte da empresa acima do público-alvo do produto")
	}

	// Family preference.
	if v.Family == familySAPCore && s.SAPCorePreference != signals.SAPPreferNone &&
		v.Variant != string(s.SAPCorePreference) {
		b.FamilyRules -= w.FamilyPreference
		c.addWhy(fmt.Sprintf("Texto indica preferência por outra geração do SAP (%s)", s.SAPCorePreference))
	}

	e.contextWhy(&c, s)
	erpPainPoints(&c, s)
	c.finish(criteria)
	return c
}

func erpPainPoints(c *ScoredCandidate, s *signals.Signals) {
	v := c.Vendor
	switch v.Tier {
	case catalog.TierEnterprise:
		c.addPain("TCO elevado e projetos de implantação longos")
		c.addPain("Exige governança forte de dados e processos")
	case catalog.TierSMB:
		c.addPain("Limitação de escala para crescimento e múltiplas empresas")
	case catalog.TierMid:
		c.addPain("Customizações tendem a acumular débito técnico")
	}
	if v.Family == familySAPCore && v.Variant == string(signals.SAPPreferECC) {
		c.addPain("Fim do suporte padrão do SAP ECC em 2027 força migração")
	}
	if v.HasTag("legado") {
		c.addPain("Plataforma legada com roadmap limitado")
	}
	if v.Family == familyTOTVS {
		if s.Multinacional {
			c.addPain("Suporte limitado a operações multinacionais")
		}
		if s.SetorRegulado {
			c.addPain("Aderência regulatória depende de customizações")
		}
	}
	if v.NameHas("oracle", "netsuite", "dynamics", "infor") {
		c.addPain("Localização fiscal brasileira depende de parceiros ou add-ons")
	}
}
