package scorer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sells-group/stack-radar/internal/signals"
	"github.com/sells-group/stack-radar/internal/textnorm"
)

const notInformed = "não informado"

// joinPT joins items as a Portuguese list: "a", "a e b", "a, b e c".
func joinPT(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " e " + items[len(items)-1]
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// summarize builds the one-sentence summary from the first three highlights.
func summarize(highlights []string) string {
	if len(highlights) == 0 {
		return "Aderência genérica ao perfil, sem sinais específicos."
	}
	if len(highlights) > 3 {
		highlights = highlights[:3]
	}
	return capitalize(joinPT(highlights)) + "."
}

func yesNo(b bool) string {
	if b {
		return "sim"
	}
	return "não"
}

// criteriaPanel renders the fixed facts shown next to every candidate.
func criteriaPanel(s *signals.Signals) []string {
	emp := notInformed
	if s.EmployeesReported > 0 {
		emp = "~" + textnorm.FormatInt(int64(s.EmployeesReported))
	}
	rev := notInformed
	if s.RevenueReported > 0 {
		rev = textnorm.FormatBRL(s.RevenueReported)
	}
	seg := strings.TrimSpace(s.Segmento)
	if seg == "" {
		seg = notInformed
	}
	return []string{
		"Funcionários: " + emp,
		"Faturamento: " + rev,
		"Segmento: " + seg,
		"Multinacional: " + yesNo(s.Multinacional),
		"Multiempresa: " + yesNo(s.Multiempresa),
		"Setor regulado: " + yesNo(s.SetorRegulado),
		fmt.Sprintf("Notícias analisadas: %d", len(s.News)),
	}
}

func porteBand(emp, enterprise, smb int) string {
	switch {
	case emp >= enterprise:
		return "grande porte"
	case emp >= smb:
		return "médio porte"
	default:
		return "pequeno porte"
	}
}

func revenueBand(rev, high, low int64) string {
	switch {
	case rev >= high:
		return "faturamento alto"
	case rev > low:
		return "faturamento médio"
	default:
		return "faturamento baixo"
	}
}

// contextWhy appends the profile-level facts every candidate's rationale
// carries.
func (e *Engine) contextWhy(c *ScoredCandidate, s *signals.Signals) {
	th := e.cfg.Thresholds
	if s.EmployeesReported > 0 {
		c.addWhy(fmt.Sprintf("Empresa de %s (~%s funcionários)",
			porteBand(s.EmployeesReported, th.EnterpriseHeadcount, th.SMBHeadcount),
			textnorm.FormatInt(int64(s.EmployeesReported))))
	}
	if s.RevenueReported > 0 {
		c.addWhy(fmt.Sprintf("%s (%s)",
			capitalize(revenueBand(s.RevenueReported, th.MismatchRevenue, e.cfg.Fiscal.CostRevenueCeiling)),
			textnorm.FormatBRL(s.RevenueReported)))
	}
	if s.SetorRegulado {
		c.addWhy("Setor regulado exige trilha de auditoria e compliance")
	}
	if s.Multinacional {
		c.addWhy("Operação multinacional demanda multi-moeda e localização")
	}
}
