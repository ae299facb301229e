package painpoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	require.NotNil(t, c)
	assert.GreaterOrEqual(t, len(c.Segments), 30)
	assert.NotEmpty(t, c.GenericDor)
	for _, s := range c.Segments {
		assert.NotEmpty(t, s.Dor, s.Segmento)
	}
	assert.Same(t, c, DefaultCatalog())
	assert.Same(t, Default(), Default())
}

func TestResolve_Default(t *testing.T) {
	r := Default()

	tests := []struct {
		name     string
		seg, sub string
		wantSeg  string
		wantVia  Via
		wantConf int
	}{
		{"digital bank alias", "Banco Digital XYZ", "", "Serviços Financeiros (Bancos)", ViaAlias, 95},
		{"no clue", "empresa qualquer sem pista", "", "", ViaFallback, 20},
		{"empty", "", "", "", ViaFallback, 20},
		{"alias in subsegment", "Tecnologia", "SaaS B2B", "Tecnologia e Software", ViaAlias, 95},
		{"accents folded", "Metalúrgica", "", "Metalurgia e Siderurgia", ViaAlias, 95},
		{"hospital", "Saúde", "Hospital geral", "Hospitais e Clínicas", ViaAlias, 95},
		{"generic entry scored", "Indústria", "chão de fábrica e PCP", "Indústria (geral)", ViaScore, 46},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.seg, tt.sub, Options{})
			assert.Equal(t, tt.wantSeg, got.SegmentoResolvido)
			assert.Equal(t, tt.wantVia, got.Via)
			assert.Equal(t, tt.wantConf, got.Confidence)
			assert.NotEmpty(t, got.Dor)
			assert.Nil(t, got.Debug)
		})
	}
}

func TestResolve_FallbackUsesGenericDor(t *testing.T) {
	got := Default().Resolve("empresa qualquer sem pista", "", Options{})
	assert.Equal(t, DefaultCatalog().GenericDor, got.Dor)
}

func TestResolve_NegKeywordBlocksEntry(t *testing.T) {
	got := Default().Resolve("Banco de dados", "consultoria em modelagem", Options{})
	assert.NotEqual(t, "Serviços Financeiros (Bancos)", got.SegmentoResolvido)
	assert.Equal(t, "Consultoria e Serviços Profissionais", got.SegmentoResolvido)
}

func TestResolve_GenericSkipsAliasStage(t *testing.T) {
	got := Default().Resolve("Revenda", "", Options{Debug: true})
	assert.NotEqual(t, ViaAlias, got.Via)
	require.NotNil(t, got.Debug)
	assert.Empty(t, got.Debug.AliasMatch)
	assert.Len(t, got.Debug.Scores, len(DefaultCatalog().Segments))
}

func TestResolve_Debug(t *testing.T) {
	got := Default().Resolve("Banco Digital XYZ", "", Options{Debug: true})
	require.NotNil(t, got.Debug)
	assert.Equal(t, "banco digital xyz", got.Debug.Text)
	assert.Equal(t, "banco digital", got.Debug.AliasMatch)
	assert.Empty(t, got.Debug.Scores)
}

func customResolver(t *testing.T) *Resolver {
	t.Helper()
	c, err := ParseCatalog([]byte(`
generic_dor: "dor generica"
segments:
  - segmento: "Agro"
    aliases: [agricola, rural, fazenda, campo]
    generic: true
    dor: "dor agro"
  - segmento: "Pesca"
    aliases: [pesqueira]
    keywords: [barco, rede]
    neg_keywords: [rede de lojas]
    dor: "dor pesca"
`))
	require.NoError(t, err)
	return NewResolver(c)
}

func TestResolve_Scoring(t *testing.T) {
	r := customResolver(t)

	// name 32 + 4 aliases 56 + sub bonus 16 = 104, over sqrt(3.4).
	got := r.Resolve("Agro agrícola rural", "fazenda campo", Options{Debug: true})
	assert.Equal(t, "Agro", got.SegmentoResolvido)
	assert.Equal(t, ViaScore, got.Via)
	assert.Equal(t, 56, got.Confidence)
	require.Len(t, got.Debug.Scores, 2)
	agro := got.Debug.Scores[0]
	assert.True(t, agro.NameHit)
	assert.Equal(t, 4, agro.AliasHits)
	assert.InDelta(t, 16.0, agro.SubBonus, 0.001)
	assert.InDelta(t, 56.4, agro.Score, 0.01)

	// Name alone is not enough once normalized.
	got = r.Resolve("Agro", "", Options{})
	assert.Equal(t, ViaFallback, got.Via)
	assert.Equal(t, "dor generica", got.Dor)

	// Non-generic aliases resolve directly.
	got = r.Resolve("Indústria pesqueira", "", Options{})
	assert.Equal(t, "Pesca", got.SegmentoResolvido)
	assert.Equal(t, ViaAlias, got.Via)

	// Negative keywords make the entry ineligible everywhere.
	got = r.Resolve("Pesqueira e rede de lojas", "", Options{Debug: true})
	assert.Equal(t, ViaFallback, got.Via)
	assert.False(t, got.Debug.Scores[1].Eligible)
}

func TestEntryScore_GeneralityPenalty(t *testing.T) {
	r := customResolver(t)
	pesca := r.entries[1]

	// One keyword hit without the name: 9 - 6, over sqrt(1 + 0.6 + 0.8).
	sc := pesca.score("barco", "")
	assert.Equal(t, 1, sc.KeywordHits)
	assert.InDelta(t, 1.94, sc.Score, 0.01)
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad yaml", "segments: [", "parse yaml"},
		{"no segments", "generic_dor: x\nsegments: []\n", "invalid catalog"},
		{"missing dor", "generic_dor: x\nsegments:\n  - segmento: A\n", "invalid catalog"},
		{"blank dor", "generic_dor: x\nsegments:\n  - {segmento: A, dor: \"  \"}\n", "blank dor"},
		{"blank generic", "generic_dor: \" \"\nsegments:\n  - {segmento: A, dor: y}\n", "generic_dor is blank"},
		{"duplicate", "generic_dor: x\nsegments:\n  - {segmento: A, dor: y}\n  - {segmento: A, dor: z}\n", "duplicate segment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "segments.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generic_dor: g\nsegments:\n  - {segmento: Vinho, aliases: [vinicola], dor: d}\n"), 0o644))

	c, err := LoadCatalog(path)
	require.NoError(t, err)
	got := NewResolver(c).Resolve("Vinícola Serra", "", Options{})
	assert.Equal(t, "Vinho", got.SegmentoResolvido)
	assert.Equal(t, 95, got.Confidence)

	_, err = LoadCatalog(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestNewResolver_NilUsesDefault(t *testing.T) {
	assert.Same(t, DefaultCatalog(), NewResolver(nil).Catalog())
}
