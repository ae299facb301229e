package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyProfile_UnmarshalLenient(t *testing.T) {
	data := `{
		"Empresa": "Acme Alimentos",
		"segmento": "Alimentos",
		"funcionarios": 1750,
		"faturamento": "R$ 1,2 bi",
		"ERPAtualOuProvavel": null,
		"ultimas5noticias": [
			{"title": "Acme abre fábrica", "link": "https://acme.example/news"},
			"manchete solta",
			{"foo": "ignored"}
		],
		"cnpj": "12.345.678/0001-90",
		"listed": true,
		"extra": {"origem": "crm", "score": 7}
	}`

	var p CompanyProfile
	require.NoError(t, json.Unmarshal([]byte(data), &p))

	assert.Equal(t, "Acme Alimentos", p.Empresa)
	assert.Equal(t, "Alimentos", p.Segmento)
	assert.Equal(t, "1750", p.Funcionarios)
	assert.Empty(t, p.ERPAtualOuProvavel)
	require.Len(t, p.Noticias, 2)
	assert.Equal(t, NewsItem{Titulo: "Acme abre fábrica", URL: "https://acme.example/news"}, p.Noticias[0])
	assert.Equal(t, "manchete solta", p.Noticias[1].Titulo)
	assert.Equal(t, map[string]string{
		"cnpj":   "12.345.678/0001-90",
		"listed": "true",
		"origem": "crm",
		"score":  "7",
	}, p.Extra)
}

func TestCompanyProfile_UnmarshalErrors(t *testing.T) {
	var p CompanyProfile
	err := json.Unmarshal([]byte(`["not", "an", "object"]`), &p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model: decode profile")
}

func TestCompanyProfile_UnmarshalBadNews(t *testing.T) {
	var p CompanyProfile
	require.NoError(t, json.Unmarshal([]byte(`{"noticias": "nenhuma"}`), &p))
	assert.Empty(t, p.Noticias)
}

func TestCompanyProfile_SearchText(t *testing.T) {
	p := CompanyProfile{
		Empresa:            "Ação Têxtil",
		Segmento:           "Confecção",
		ERPAtualOuProvavel: "TOTVS",
		Noticias:           []NewsItem{{Titulo: "Nova Coleção", URL: "https://x.example"}},
		Extra:              map[string]string{"b": "dois", "a": "um"},
	}

	safe := p.SearchText(false)
	full := p.SearchText(true)

	assert.Contains(t, safe, "acao textil")
	assert.Contains(t, safe, "nova colecao")
	assert.Contains(t, safe, "https://x.example")
	assert.NotContains(t, safe, "totvs")
	assert.Contains(t, full, "totvs")
	assert.Less(t, strings.Index(safe, "a: um"), strings.Index(safe, "b: dois"))
}

func TestNewsItem_Text(t *testing.T) {
	n := NewsItem{Titulo: "T", Resumo: "R", URL: "U"}
	assert.Equal(t, "T R U", n.Text())
}
