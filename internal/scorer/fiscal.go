package scorer

import (
	"fmt"

	"github.com/sells-group/stack-radar/internal/catalog"
	"github.com/sells-group/stack-radar/internal/signals"
	"github.com/sells-group/stack-radar/internal/textnorm"
)

// erpContext classifies the ERP winner the fiscal scorer is conditioned on.
type erpContext struct {
	name        string
	totvs       bool
	businessOne bool
	sapCore     bool
	cloudERP    bool
}

func newERPContext(name string) erpContext {
	folded := textnorm.Fold(name)
	ctx := erpContext{
		name:        name,
		totvs:       catalog.IsTOTVS(name),
		businessOne: catalog.IsBusinessOne(name),
	}
	ctx.sapCore = textnorm.ContainsTerm(folded, "sap") && !ctx.businessOne
	ctx.cloudERP = textnorm.ContainsAnyTerm(folded, "dynamics", "netsuite")
	return ctx
}

func (e *Engine) fiscalSegmentRules() []segmentRule {
	w := e.cfg.Fiscal
	return []segmentRule{
		{func(s *signals.Signals) bool { return s.Multinacional }, []string{"global"}, w.GlobalFit, "operação multinacional"},
		{func(s *signals.Signals) bool { return s.SetorRegulado }, []string{"regulado"}, w.RegulatedFit, "setores regulados"},
		{func(s *signals.Signals) bool { return s.Multiempresa }, []string{"multiempresa"}, w.MultiEntityFit, "operação multiempresa"},
		{func(s *signals.Signals) bool { return s.CloudSaaS }, []string{"cloud_fiscal"}, w.CloudFit, "estratégia cloud/SaaS"},
		{func(s *signals.Signals) bool { return s.Varejo || s.Ecom }, []string{"varejo", "ecommerce"}, w.VarejoFit, "varejo e e-commerce"},
	}
}

func (e *Engine) scoreFiscal(v *catalog.Vendor, s *signals.Signals, erp erpContext, criteria []string) ScoredCandidate {
	w := e.cfg.Fiscal
	c := newCandidate(v)
	b := &c.Breakdown

	// Hard exclusions.
	switch {
	case v.HasTag("sap_only") && !erp.sapCore:
		c.exclude("Excluído: solução exclusiva para ambientes SAP ECC/S4")
		c.Criteria = append(c.Criteria, criteria...)
		return c
	case v.HasTag("b1_addon") && !erp.businessOne:
		c.exclude("Excluído: add-on exclusivo do SAP Business One")
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

	// ERP synergy.
	switch {
	case erp.totvs:
		switch {
		case v.HasTag("totvs_internal"):
			b.Synergy += w.TOTVSInternalSynergy
			c.addWhy(fmt.Sprintf("Fiscal nativo do ERP provável (%s)", erp.name))
			c.highlight("sinergia nativa com o ERP TOTVS")
		case strong:
			b.Synergy += w.TOTVSExternalEvidence
			c.addWhy("Evidência de uso externo ao ecossistema TOTVS")
		default:
			b.Synergy -= w.TOTVSExternalPenalty
			c.addWhy("ERP TOTVS já cobre o fiscal; solução externa sem evidência de uso")
		}
	case erp.businessOne && v.HasTag("b1_addon"):
		b.Synergy += w.B1AddonSynergy
		c.addWhy("Add-on fiscal homologado para SAP Business One")
		c.highlight("sinergia com SAP Business One")
	case erp.sapCore && v.HasTag("enterprise_fiscal"):
		b.Synergy += w.SAPEnterpriseSynergy
		c.addWhy(fmt.Sprintf("Integração madura com %s", erp.name))
		c.highlight("integração madura com SAP")
	case erp.cloudERP && v.HasTag("cloud_fiscal"):
		b.Synergy += w.CloudFiscalSynergy
		c.addWhy(fmt.Sprintf("Conector cloud para %s", erp.name))
		c.highlight("conector cloud com o ERP")
	}

	// Size and segment fit.
	e.applySizeFit(&c, s, sizeWeights{w.SizeFitInBand, w.SizeFitPartial, w.TierSizeBonus, w.RevenueFit})
	applySegmentRules(&c, s, e.fiscalSegmentRules())

	if s.DeclaredFiscal != "" && textnorm.ContainsAnyTerm(s.DeclaredFiscal, v.Terms()...) {
		b.BrandSignals += w.DeclaredHint
		c.addWhy(fmt.Sprintf("Perfil aponta %s como solução fiscal atual ou provável", v.Name))
		c.highlight("solução fiscal declarada no perfil")
	}

	// Cost sensitivity.
	if s.RevenueReported > 0 && s.RevenueReported <= w.CostRevenueCeiling {
		switch {
		case v.HasTag("bpo"):
			b.CostPenalties -= w.BPOCostBonus
			c.addWhy("Faturamento enxuto favorece terceirização fiscal")
			c.highlight("custo adequado ao faturamento")
		case v.HasTag("enterprise_fiscal"):
			b.CostPenalties += w.EnterpriseCostPenalty
			c.addWhy("Licenciamento enterprise desproporcional ao faturamento")
		}
	}

	// Complexity tie-break.
	idx := s.ComplexityIndex()
	switch {
	case idx >= w.ComplexityHigh && v.Tier == catalog.TierEnterprise:
		b.SizeFit += w.ComplexityBonus
		c.addWhy(fmt.Sprintf("Operação complexa (índice %d/10) pede solução robusta", idx))
	case idx <= w.ComplexityLow && (v.Tier == catalog.TierSMB || hasAnyTag(v, "bpo", "light")):
		b.SizeFit += w.ComplexityBonus
		c.addWhy(fmt.Sprintf("Operação simples (índice %d/10) comporta solução leve", idx))
	case idx > w.ComplexityLow && idx < w.ComplexityHigh && v.Tier == catalog.TierMid:
		b.SizeFit += w.ComplexityMidBonus
	}

	e.contextWhy(&c, s)
	fiscalPainPoints(&c)
	c.finish(criteria)
	return c
}

func fiscalPainPoints(c *ScoredCandidate) {
	v := c.Vendor
	if v.HasTag("enterprise_fiscal") {
		c.addPain("Licenciamento e implantação caros para contas menores")
	}
	if v.HasTag("bpo") {
		c.addPain("Dependência de terceiros e menor controle sobre a apuração")
	}
	if v.HasTag("light") {
		c.addPain("Cobertura limitada para apurações complexas (SPED, Bloco K)")
	}
	if v.HasTag("totvs_internal") {
		c.addPain("Cobertura fiscal restrita ao ecossistema TOTVS")
	}
	if v.HasTag("sap_only") {
		c.addPain("Dependente do ambiente SAP")
	}
	if v.HasTag("b1_addon") {
		c.addPain("Depende do parceiro de canal SAP Business One")
	}
	if v.HasTag("cloud_fiscal") {
		c.addPain("Integração com ERP local pode exigir middleware")
	}
	if len(c.PainPoints) == 0 {
		c.addPain("Manutenção das regras fiscais depende do roadmap do fornecedor")
	}
}
