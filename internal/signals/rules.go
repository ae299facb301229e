package signals

import "regexp"

// Source selects which rendering of the profile a rule is evaluated against.
type Source string

const (
	// SourceSafe is the profile without its vendor hint fields.
	SourceSafe Source = "safe"
	// SourceFull is the whole profile, hints included.
	SourceFull Source = "full"
	// SourceSegment is segmento + subsegmento only.
	SourceSegment Source = "segment"
)

// Rule is one (pattern, signal) pair of the presence table.
type Rule struct {
	Name    string `json:"name"`
	Pattern string `json:"pattern"`
	Source  Source `json:"source"`
}

type rule struct {
	name    string
	pattern *regexp.Regexp
	source  Source
	flag    func(*Signals) *bool
}

// Patterns run against folded text (lowercase, no diacritics).
var rules = []rule{
	{"has_sap", regexp.MustCompile(`\bsap\b|s/?4 ?hana|business one`), SourceSafe, func(s *Signals) *bool { return &s.HasSap }},
	{"has_totvs", regexp.MustCompile(`\btotvs\b|\bprotheus\b|\bdatasul\b|\blogix\b`), SourceSafe, func(s *Signals) *bool { return &s.HasTotvs }},
	{"has_oracle", regexp.MustCompile(`\boracle\b|\bnetsuite\b|jd ?edwards`), SourceSafe, func(s *Signals) *bool { return &s.HasOracle }},
	{"has_azure", regexp.MustCompile(`\bazure\b|\bmicrosoft\b|\bdynamics\b|office 365|power bi`), SourceSafe, func(s *Signals) *bool { return &s.HasAzure }},
	{"ecom", regexp.MustCompile(`e-?commerce|loja virtual|loja online|marketplace|\bvtex\b|\bshopify\b|\bmagento\b`), SourceSafe, func(s *Signals) *bool { return &s.Ecom }},
	{"cloud_saas", regexp.MustCompile(`\bcloud\b|\bnuvem\b|\bsaas\b|\baws\b|\bazure\b|google cloud|\bgcp\b`), SourceSafe, func(s *Signals) *bool { return &s.CloudSaaS }},
	{"multinacional", regexp.MustCompile(
		`multinacional|\bglobal\b|presenca (?:em|internacional)|\bpaises\b|` +
			`(?:filial|filiais|subsidiaria|subsidiarias|escritorio|fabrica|planta|unidade)s? (?:em|no|na|nos|nas) ` +
			`(?:argentina|chile|mexico|colombia|peru|uruguai|paraguai|estados unidos|eua|europa|portugal|espanha|china|india|canada|alemanha)|` +
			`\blatam\b|america latina`), SourceSafe, func(s *Signals) *bool { return &s.Multinacional }},
	{"multiempresa", regexp.MustCompile(
		`\bholding\b|\bgrupo\b|consolidad|multi-?empresa|\bcoligadas?\b|\bcontroladas?\b|\bsubsidiarias\b|` +
			`\bcnpjs\b|varias empresas|diversas empresas|unidades de negocio`), SourceSafe, func(s *Signals) *bool { return &s.Multiempresa }},

	{"manuf", regexp.MustCompile(
		`industri|fabrica|manufatur|metal|quimic|autopec|plastic|textil|siderurg|papel|celulose|embalag|moveleir|ceramic`),
		SourceSegment, func(s *Signals) *bool { return &s.Manuf }},
	{"varejo", regexp.MustCompile(
		`varej|atacad|distribui|comercio|\blojas?\b|supermercad|e-?commerce|franquia`),
		SourceSegment, func(s *Signals) *bool { return &s.Varejo }},
	{"financeiro", regexp.MustCompile(
		`\bbancos?\b|banco digital|financ|credito|\bseguros?\b|segurador|fintech|pagamento|investiment|previdencia|consorcio|corretora`),
		SourceSegment, func(s *Signals) *bool { return &s.Financeiro }},
	{"saude", regexp.MustCompile(
		`saude|hospita|clinic|laborator|farmac|medic|odonto|diagnostic`),
		SourceSegment, func(s *Signals) *bool { return &s.Saude }},
	{"energia", regexp.MustCompile(
		`energia|eletric|petrol|oleo e gas|\bgas\b|saneamento|utilities|mineracao|mineradora`),
		SourceSegment, func(s *Signals) *bool { return &s.Energia }},
	{"servicos", regexp.MustCompile(
		`servico|consultori|tecnologia|software|\bti\b|agencia|logistic|transport|educa|outsourcing|bpo`),
		SourceSegment, func(s *Signals) *bool { return &s.Servicos }},
	{"alimentos", regexp.MustCompile(
		`aliment|bebida|frigorif|agroind|laticini|\bagro|frutas|graos|carnes`),
		SourceSegment, func(s *Signals) *bool { return &s.Alimentos }},
	{"educacao", regexp.MustCompile(
		`educa|escola|faculdade|universidade|ensino|colegio`),
		SourceSegment, func(s *Signals) *bool { return &s.Educacao }},
}

var (
	s4Re  = regexp.MustCompile(`s/?4 ?hana|rise with sap|migr\w* (?:para )?(?:o )?s/?4|\bs/4\b`)
	eccRe = regexp.MustCompile(`\becc\b|\br/?3\b|sap legado|ecc ?6`)
	rmRe  = regexp.MustCompile(`\btotvs rm\b|\brm totvs\b|\bcorpore\b|\brm\b`)
	hrRe  = regexp.MustCompile(`recursos humanos|\brh\b|folha de pagamento|gestao de pessoas`)
)

// Rules lists the presence table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{Name: r.name, Pattern: r.pattern.String(), Source: r.source}
	}
	return out
}
