package config

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// ScoringConfig holds the hand-tuned constants of the vendor scorers. The
// defaults are the calibrated values; config files may recalibrate any of
// them without code changes.
type ScoringConfig struct {
	ERP        ERPWeights       `yaml:"erp" mapstructure:"erp"`
	Fiscal     FiscalWeights    `yaml:"fiscal" mapstructure:"fiscal"`
	Thresholds ScoringThreshold `yaml:"thresholds" mapstructure:"thresholds"`
	Ranking    RankingConfig    `yaml:"ranking" mapstructure:"ranking"`
}

// ERPWeights are the point values of the ERP scorer.
type ERPWeights struct {
	EvidenceStrong   float64   `yaml:"evidence_strong" mapstructure:"evidence_strong"`
	EvidenceMentions []float64 `yaml:"evidence_mentions" mapstructure:"evidence_mentions"`

	SizeFitInBand  float64 `yaml:"size_fit_in_band" mapstructure:"size_fit_in_band"`
	SizeFitPartial float64 `yaml:"size_fit_partial" mapstructure:"size_fit_partial"`
	TierSizeBonus  float64 `yaml:"tier_size_bonus" mapstructure:"tier_size_bonus"`
	RevenueFit     float64 `yaml:"revenue_fit" mapstructure:"revenue_fit"`
	GlobalFit      float64 `yaml:"global_fit" mapstructure:"global_fit"`

	SegmentManuf      float64 `yaml:"segment_manuf" mapstructure:"segment_manuf"`
	SegmentVarejo     float64 `yaml:"segment_varejo" mapstructure:"segment_varejo"`
	SegmentEcom       float64 `yaml:"segment_ecom" mapstructure:"segment_ecom"`
	SegmentServicos   float64 `yaml:"segment_servicos" mapstructure:"segment_servicos"`
	SegmentAlimentos  float64 `yaml:"segment_alimentos" mapstructure:"segment_alimentos"`
	SegmentFinanceiro float64 `yaml:"segment_financeiro" mapstructure:"segment_financeiro"`
	SegmentSaude      float64 `yaml:"segment_saude" mapstructure:"segment_saude"`
	SegmentEducacao   float64 `yaml:"segment_educacao" mapstructure:"segment_educacao"`
	SegmentEnergia    float64 `yaml:"segment_energia" mapstructure:"segment_energia"`
	SegmentRegulado   float64 `yaml:"segment_regulado" mapstructure:"segment_regulado"`
	MultiEntityFit    float64 `yaml:"multi_entity_fit" mapstructure:"multi_entity_fit"`
	CloudFit          float64 `yaml:"cloud_fit" mapstructure:"cloud_fit"`
	AzureFit          float64 `yaml:"azure_fit" mapstructure:"azure_fit"`

	BrandSAP     float64 `yaml:"brand_sap" mapstructure:"brand_sap"`
	BrandTOTVS   float64 `yaml:"brand_totvs" mapstructure:"brand_totvs"`
	BrandOracle  float64 `yaml:"brand_oracle" mapstructure:"brand_oracle"`
	DeclaredHint float64 `yaml:"declared_hint" mapstructure:"declared_hint"`

	TOTVSMismatch    float64 `yaml:"totvs_mismatch" mapstructure:"totvs_mismatch"`
	SMBMismatch      float64 `yaml:"smb_mismatch" mapstructure:"smb_mismatch"`
	FamilyPreference float64 `yaml:"family_preference" mapstructure:"family_preference"`
}

// FiscalWeights are the point values of the fiscal scorer.
type FiscalWeights struct {
	EvidenceStrong   float64   `yaml:"evidence_strong" mapstructure:"evidence_strong"`
	EvidenceMentions []float64 `yaml:"evidence_mentions" mapstructure:"evidence_mentions"`

	TOTVSInternalSynergy  float64 `yaml:"totvs_internal_synergy" mapstructure:"totvs_internal_synergy"`
	TOTVSExternalPenalty  float64 `yaml:"totvs_external_penalty" mapstructure:"totvs_external_penalty"`
	TOTVSExternalEvidence float64 `yaml:"totvs_external_evidence" mapstructure:"totvs_external_evidence"`
	B1AddonSynergy        float64 `yaml:"b1_addon_synergy" mapstructure:"b1_addon_synergy"`
	SAPEnterpriseSynergy  float64 `yaml:"sap_enterprise_synergy" mapstructure:"sap_enterprise_synergy"`
	CloudFiscalSynergy    float64 `yaml:"cloud_fiscal_synergy" mapstructure:"cloud_fiscal_synergy"`

	SizeFitInBand  float64 `yaml:"size_fit_in_band" mapstructure:"size_fit_in_band"`
	SizeFitPartial float64 `yaml:"size_fit_partial" mapstructure:"size_fit_partial"`
	TierSizeBonus  float64 `yaml:"tier_size_bonus" mapstructure:"tier_size_bonus"`
	RevenueFit     float64 `yaml:"revenue_fit" mapstructure:"revenue_fit"`
	GlobalFit      float64 `yaml:"global_fit" mapstructure:"global_fit"`
	RegulatedFit   float64 `yaml:"regulated_fit" mapstructure:"regulated_fit"`
	MultiEntityFit float64 `yaml:"multi_entity_fit" mapstructure:"multi_entity_fit"`
	CloudFit       float64 `yaml:"cloud_fit" mapstructure:"cloud_fit"`
	VarejoFit      float64 `yaml:"varejo_fit" mapstructure:"varejo_fit"`
	DeclaredHint   float64 `yaml:"declared_hint" mapstructure:"declared_hint"`

	CostRevenueCeiling    int64   `yaml:"cost_revenue_ceiling" mapstructure:"cost_revenue_ceiling"`
	BPOCostBonus          float64 `yaml:"bpo_cost_bonus" mapstructure:"bpo_cost_bonus"`
	EnterpriseCostPenalty float64 `yaml:"enterprise_cost_penalty" mapstructure:"enterprise_cost_penalty"`

	ComplexityHigh     int     `yaml:"complexity_high" mapstructure:"complexity_high"`
	ComplexityLow      int     `yaml:"complexity_low" mapstructure:"complexity_low"`
	ComplexityBonus    float64 `yaml:"complexity_bonus" mapstructure:"complexity_bonus"`
	ComplexityMidBonus float64 `yaml:"complexity_mid_bonus" mapstructure:"complexity_mid_bonus"`
}

// ScoringThreshold holds the size cut-offs shared by both scorers.
type ScoringThreshold struct {
	EnterpriseHeadcount    int   `yaml:"enterprise_headcount" mapstructure:"enterprise_headcount"`
	SMBHeadcount           int   `yaml:"smb_headcount" mapstructure:"smb_headcount"`
	TOTVSMismatchHeadcount int   `yaml:"totvs_mismatch_headcount" mapstructure:"totvs_mismatch_headcount"`
	MismatchRevenue        int64 `yaml:"mismatch_revenue" mapstructure:"mismatch_revenue"`
}

// RankingConfig configures the top-3 comparator.
type RankingConfig struct {
	SignificanceThreshold float64 `yaml:"significance_threshold" mapstructure:"significance_threshold"`
	FallbackGap           float64 `yaml:"fallback_gap" mapstructure:"fallback_gap"`
	MaxReasons            int     `yaml:"max_reasons" mapstructure:"max_reasons"`
}

// DefaultScoringConfig returns the calibrated scoring constants.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		ERP: ERPWeights{
			EvidenceStrong:   24,
			EvidenceMentions: []float64{4, 6, 8},

			SizeFitInBand:  18,
			SizeFitPartial: 10,
			TierSizeBonus:  6,
			RevenueFit:     6,
			GlobalFit:      6,

			SegmentManuf:      8,
			SegmentVarejo:     6,
			SegmentEcom:       4,
			SegmentServicos:   5,
			SegmentAlimentos:  5,
			SegmentFinanceiro: 6,
			SegmentSaude:      6,
			SegmentEducacao:   6,
			SegmentEnergia:    5,
			SegmentRegulado:   4,
			MultiEntityFit:    8,
			CloudFit:          6,
			AzureFit:          7,

			BrandSAP:     6,
			BrandTOTVS:   5,
			BrandOracle:  5,
			DeclaredHint: 12,

			TOTVSMismatch:    12,
			SMBMismatch:      25,
			FamilyPreference: 6,
		},
		Fiscal: FiscalWeights{
			EvidenceStrong:   20,
			EvidenceMentions: []float64{3, 5, 7},

			TOTVSInternalSynergy:  30,
			TOTVSExternalPenalty:  10,
			TOTVSExternalEvidence: 8,
			B1AddonSynergy:        24,
			SAPEnterpriseSynergy:  14,
			CloudFiscalSynergy:    12,

			SizeFitInBand:  10,
			SizeFitPartial: 6,
			TierSizeBonus:  4,
			RevenueFit:     4,
			GlobalFit:      4,
			RegulatedFit:   5,
			MultiEntityFit: 4,
			CloudFit:       4,
			VarejoFit:      3,
			DeclaredHint:   10,

			CostRevenueCeiling:    150_000_000,
			BPOCostBonus:          22,
			EnterpriseCostPenalty: 12,

			ComplexityHigh:     6,
			ComplexityLow:      2,
			ComplexityBonus:    3,
			ComplexityMidBonus: 2,
		},
		Thresholds: ScoringThreshold{
			EnterpriseHeadcount:    1500,
			SMBHeadcount:           300,
			TOTVSMismatchHeadcount: 600,
			MismatchRevenue:        800_000_000,
		},
		Ranking: RankingConfig{
			SignificanceThreshold: 4,
			FallbackGap:           6,
			MaxReasons:            2,
		},
	}
}

// setScoringDefaults registers every scoring constant under "scoring." so
// files and RADAR_SCORING_* variables can override any single value.
func setScoringDefaults(v *viper.Viper) error {
	raw, err := yaml.Marshal(DefaultScoringConfig())
	if err != nil {
		return eris.Wrap(err, "config: marshal scoring defaults")
	}
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return eris.Wrap(err, "config: unmarshal scoring defaults")
	}
	setDefaults(v, "scoring", tree)
	return nil
}

func setDefaults(v *viper.Viper, prefix string, tree map[string]any) {
	for k, val := range tree {
		key := prefix + "." + k
		if sub, ok := val.(map[string]any); ok {
			setDefaults(v, key, sub)
			continue
		}
		v.SetDefault(key, val)
	}
}
