// Package scorer ranks ERP and fiscal-compliance vendors against a company
// profile and explains the ranking.
package scorer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/stack-radar/internal/config"
)

// DefaultScorerConfig returns the calibrated scoring constants.
func DefaultScorerConfig() config.ScoringConfig {
	return config.DefaultScoringConfig()
}

// ValidateConfig checks that a ScoringConfig is internally consistent.
func ValidateConfig(c config.ScoringConfig) error {
	var errs []string

	// All weights must be non-negative; penalties are stored as magnitudes.
	weights := map[string]float64{
		"erp.evidence_strong":              c.ERP.EvidenceStrong,
		"erp.size_fit_in_band":             c.ERP.SizeFitInBand,
		"erp.size_fit_partial":             c.ERP.SizeFitPartial,
		"erp.tier_size_bonus":              c.ERP.TierSizeBonus,
		"erp.revenue_fit":                  c.ERP.RevenueFit,
		"erp.global_fit":                   c.ERP.GlobalFit,
		"erp.segment_manuf":                c.ERP.SegmentManuf,
		"erp.segment_varejo":               c.ERP.SegmentVarejo,
		"erp.segment_ecom":                 c.ERP.SegmentEcom,
		"erp.segment_servicos":             c.ERP.SegmentServicos,
		"erp.segment_alimentos":            c.ERP.SegmentAlimentos,
		"erp.segment_financeiro":           c.ERP.SegmentFinanceiro,
		"erp.segment_saude":                c.ERP.SegmentSaude,
		"erp.segment_educacao":             c.ERP.SegmentEducacao,
		"erp.segment_energia":              c.ERP.SegmentEnergia,
		"erp.segment_regulado":             c.ERP.SegmentRegulado,
		"erp.multi_entity_fit":             c.ERP.MultiEntityFit,
		"erp.cloud_fit":                    c.ERP.CloudFit,
		"erp.azure_fit":                    c.ERP.AzureFit,
		"erp.brand_sap":                    c.ERP.BrandSAP,
		"erp.brand_totvs":                  c.ERP.BrandTOTVS,
		"erp.brand_oracle":                 c.ERP.BrandOracle,
		"erp.declared_hint":                c.ERP.DeclaredHint,
		"erp.totvs_mismatch":               c.ERP.TOTVSMismatch,
		"erp.smb_mismatch":                 c.ERP.SMBMismatch,
		"erp.family_preference":            c.ERP.FamilyPreference,
		"fiscal.evidence_strong":           c.Fiscal.EvidenceStrong,
		"fiscal.totvs_internal_synergy":    c.Fiscal.TOTVSInternalSynergy,
		"fiscal.totvs_external_penalty":    c.Fiscal.TOTVSExternalPenalty,
		"fiscal.totvs_external_evidence":   c.Fiscal.TOTVSExternalEvidence,
		"fiscal.b1_addon_synergy":          c.Fiscal.B1AddonSynergy,
		"fiscal.sap_enterprise_synergy":    c.Fiscal.SAPEnterpriseSynergy,
		"fiscal.cloud_fiscal_synergy":      c.Fiscal.CloudFiscalSynergy,
		"fiscal.size_fit_in_band":          c.Fiscal.SizeFitInBand,
		"fiscal.size_fit_partial":          c.Fiscal.SizeFitPartial,
		"fiscal.tier_size_bonus":           c.Fiscal.TierSizeBonus,
		"fiscal.revenue_fit":               c.Fiscal.RevenueFit,
		"fiscal.global_fit":                c.Fiscal.GlobalFit,
		"fiscal.regulated_fit":             c.Fiscal.RegulatedFit,
		"fiscal.multi_entity_fit":          c.Fiscal.MultiEntityFit,
		"fiscal.cloud_fit":                 c.Fiscal.CloudFit,
		"fiscal.varejo_fit":                c.Fiscal.VarejoFit,
		"fiscal.declared_hint":             c.Fiscal.DeclaredHint,
		"fiscal.bpo_cost_bonus":            c.Fiscal.BPOCostBonus,
		"fiscal.enterprise_cost_penalty":   c.Fiscal.EnterpriseCostPenalty,
		"fiscal.complexity_bonus":          c.Fiscal.ComplexityBonus,
		"fiscal.complexity_mid_bonus":      c.Fiscal.ComplexityMidBonus,
		"ranking.significance_threshold":   c.Ranking.SignificanceThreshold,
		"ranking.fallback_gap":             c.Ranking.FallbackGap,
	}
	var negative []string
	for name, w := range weights {
		if w < 0 {
			negative = append(negative, name)
		}
	}
	sort.Strings(negative)
	for _, name := range negative {
		errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
	}

	// Mention tables.
	for name, table := range map[string][]float64{
		"erp.evidence_mentions":    c.ERP.EvidenceMentions,
		"fiscal.evidence_mentions": c.Fiscal.EvidenceMentions,
	} {
		if len(table) == 0 {
			errs = append(errs, name+" must be non-empty")
			continue
		}
		for i := 1; i < len(table); i++ {
			if table[i] < table[i-1] {
				errs = append(errs, name+" must be non-decreasing")
				break
			}
		}
	}

	// Thresholds.
	if c.Thresholds.SMBHeadcount <= 0 {
		errs = append(errs, "thresholds.smb_headcount must be > 0")
	}
	if c.Thresholds.EnterpriseHeadcount < c.Thresholds.SMBHeadcount {
		errs = append(errs, "thresholds.enterprise_headcount must be >= smb_headcount")
	}
	if c.Thresholds.TOTVSMismatchHeadcount <= 0 {
		errs = append(errs, "thresholds.totvs_mismatch_headcount must be > 0")
	}
	if c.Thresholds.MismatchRevenue <= 0 {
		errs = append(errs, "thresholds.mismatch_revenue must be > 0")
	}
	if c.Fiscal.CostRevenueCeiling < 0 {
		errs = append(errs, "fiscal.cost_revenue_ceiling must be >= 0")
	}
	if c.Fiscal.ComplexityLow < 0 || c.Fiscal.ComplexityHigh > 10 || c.Fiscal.ComplexityLow >= c.Fiscal.ComplexityHigh {
		errs = append(errs, "fiscal complexity bounds must satisfy 0 <= low < high <= 10")
	}
	if c.Ranking.MaxReasons < 1 {
		errs = append(errs, "ranking.max_reasons must be >= 1")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
