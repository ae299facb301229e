// Package model holds the company profile records the radar consumes.
package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/stack-radar/internal/textnorm"
)

// NewsItem is one of the recent news snippets attached to a profile.
type NewsItem struct {
	Titulo string `json:"titulo"`
	Resumo string `json:"resumo"`
	URL    string `json:"url"`
}

// Text returns the title, summary and URL joined for matching.
func (n NewsItem) Text() string {
	return n.Titulo + " " + n.Resumo + " " + n.URL
}

// CompanyProfile is the loosely structured company record produced upstream
// (site analysis, CRM export). No field is required; numeric fields are kept
// as free text and parsed by the signal deriver.
type CompanyProfile struct {
	Empresa                 string            `json:"empresa,omitempty"`
	Site                    string            `json:"site,omitempty"`
	Segmento                string            `json:"segmento,omitempty"`
	Subsegmento             string            `json:"subsegmento,omitempty"`
	Funcionarios            string            `json:"funcionarios,omitempty"`
	Faturamento             string            `json:"faturamento,omitempty"`
	ERPAtualOuProvavel      string            `json:"erpatualouprovavel,omitempty"`
	SolucaoFiscalOuProvavel string            `json:"solucaofiscalouprovavel,omitempty"`
	Noticias                []NewsItem        `json:"ultimas5noticias,omitempty"`
	Extra                   map[string]string `json:"extra,omitempty"`
}

// UnmarshalJSON decodes a profile leniently: scalars of any JSON type land in
// the string fields, keys are matched case-insensitively and anything
// unrecognised is kept in Extra.
func (p *CompanyProfile) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return eris.Wrap(err, "model: decode profile")
	}

	out := CompanyProfile{}
	for key, val := range raw {
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "empresa", "nome", "razaosocial":
			out.Empresa = scalarString(val)
		case "site", "website", "url":
			out.Site = scalarString(val)
		case "segmento":
			out.Segmento = scalarString(val)
		case "subsegmento":
			out.Subsegmento = scalarString(val)
		case "funcionarios":
			out.Funcionarios = scalarString(val)
		case "faturamento":
			out.Faturamento = scalarString(val)
		case "erpatualouprovavel":
			out.ERPAtualOuProvavel = scalarString(val)
		case "solucaofiscalouprovavel":
			out.SolucaoFiscalOuProvavel = scalarString(val)
		case "ultimas5noticias", "noticias":
			out.Noticias = decodeNews(val)
		case "extra":
			var extra map[string]json.RawMessage
			if json.Unmarshal(val, &extra) == nil {
				for k, v := range extra {
					out.setExtra(k, scalarString(v))
				}
			}
		default:
			out.setExtra(key, scalarString(val))
		}
	}
	*p = out
	return nil
}

func (p *CompanyProfile) setExtra(key, val string) {
	if val == "" {
		return
	}
	if p.Extra == nil {
		p.Extra = make(map[string]string)
	}
	p.Extra[key] = val
}

// SearchText renders the profile as one folded string for substring
// matching. Vendor hint fields are only included when includeHints is set,
// so scorers can keep the profile's own guesses out of their evidence.
func (p CompanyProfile) SearchText(includeHints bool) string {
	parts := []string{
		p.Empresa, p.Site, p.Segmento, p.Subsegmento, p.Funcionarios, p.Faturamento,
	}
	if includeHints {
		parts = append(parts, p.ERPAtualOuProvavel, p.SolucaoFiscalOuProvavel)
	}
	for _, n := range p.Noticias {
		parts = append(parts, n.Text())
	}

	keys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, k+": "+p.Extra[k])
	}

	return textnorm.Fold(strings.Join(parts, " \n "))
}

// scalarString renders any JSON value as text. Nested values are kept as
// their compact JSON so they still take part in text matching.
func scalarString(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return string(raw)
	}
}

func decodeNews(raw json.RawMessage) []NewsItem {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	news := make([]NewsItem, 0, len(items))
	for _, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			if s := scalarString(item); s != "" {
				news = append(news, NewsItem{Titulo: s})
			}
			continue
		}
		var n NewsItem
		for k, v := range fields {
			switch strings.ToLower(k) {
			case "titulo", "title":
				n.Titulo = scalarString(v)
			case "resumo", "summary", "descricao":
				n.Resumo = scalarString(v)
			case "url", "link":
				n.URL = scalarString(v)
			}
		}
		if n.Titulo != "" || n.Resumo != "" || n.URL != "" {
			news = append(news, n)
		}
	}
	return news
}
