package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Serviços  Públicos", "servicos publicos"},
		{"  Indústria\tQuímica ", "industria quimica"},
		{"R$ 1,2 BILHÃO", "r$ 1,2 bilhao"},
		{"Saúde", "saude"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.in))
		})
	}
}

func TestContainsTerm(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want bool
	}{
		{"exact", "sap", "sap", true},
		{"inside sentence", "empresa adota sap s/4hana em 2024", "sap s/4hana", true},
		{"prefix of word", "a empresa informou", "infor", false},
		{"suffix of word", "parceria sapiens", "sap", false},
		{"second occurrence bounded", "informou infor ln", "infor", true},
		{"hyphen boundary", "noticia/empresa-migra-s4hana", "s4hana", true},
		{"empty term", "abc", "", false},
		{"term longer than text", "ab", "abc", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsTerm(tt.text, tt.term))
		})
	}
}

func TestCountTerms(t *testing.T) {
	text := "distribuidora atacadista com loja virtual"
	assert.Equal(t, 2, CountTerms(text, []string{"atacadista", "loja virtual", "hospital"}))
	assert.Equal(t, 0, CountTerms(text, nil))
	assert.True(t, ContainsAnyTerm(text, "hospital", "atacadista"))
	assert.False(t, ContainsAnyTerm(text, "hospital"))
}

func TestParseMoneyAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"R$ 1.500.000", 1_500_000},
		{"1,5 mi", 1_500_000},
		{"R$ 1.2 bi", 1_200_000_000},
		{"R$ 1,2 bi", 1_200_000_000},
		{"800k", 800_000},
		{"2 bi", 2_000_000_000},
		{"R$ 350 mm", 350_000_000},
		{"faturamento de 350 milhões", 350_000_000},
		{"cerca de 1,3 bilhão em receita", 1_300_000_000},
		{"R$ 500 mil", 500_000},
		{"R$ 900 mil a 1,2 mi", 900_000},
		{"receita 2023: R$ 1,2 bi", 1_200_000_000},
		{"R$ 1.234,56", 1235},
		{"1,500", 1500},
		{"1.5", 2},
		{"não informado", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMoneyAmount(tt.in))
		})
	}
}

func TestParseHeadcount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1500-2000", 1750},
		{"800-1200", 1000},
		{"800 a 1200", 1000},
		{"1k-2k", 1500},
		{"1,5k a 2,5k", 2000},
		{"2 mil a 3 mil", 2500},
		{"1 a 2 mil", 1500},
		{"500-2k", 1250},
		{"de 800 até 1.200 funcionários", 1000},
		{"1.2k", 1200},
		{"3k", 3000},
		{"500+", 500},
		{"2 mil colaboradores", 2000},
		{"cerca de 1.200 colaboradores", 1200},
		{"350", 350},
		{"não encontrado", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHeadcount(tt.in))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.750", FormatInt(1750))
	assert.Equal(t, "999", FormatInt(999))
	assert.Equal(t, "1.000.000", FormatInt(1_000_000))
	assert.Equal(t, "R$ 1,2 bi", FormatBRL(1_200_000_000))
	assert.Equal(t, "R$ 350 mi", FormatBRL(350_000_000))
	assert.Equal(t, "R$ 800 mil", FormatBRL(800_000))
	assert.Equal(t, "R$ 950", FormatBRL(950))
}
