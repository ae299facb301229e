package scorer

import (
	"regexp"

	"github.com/sells-group/stack-radar/internal/catalog"
	"github.com/sells-group/stack-radar/internal/signals"
	"github.com/sells-group/stack-radar/internal/textnorm"
)

// Patterns run against folded news text.
var (
	adoptionRe = regexp.MustCompile(
		`\badot|\bcontrat|\bimplant|\bimplement|\bmigr\w* (?:para|ao|a)\b|\bassin\w* (?:parceria|contrato)|` +
			`\bescolh|\bselecion|\bgo-?live\b|\bentra em operacao\b`)
	negationRe = regexp.MustCompile(
		`\bdeix\w* (?:o|a|de)\b|\bdeixou\b|\babandon|\bsubstitu|\bmigr\w* (?:do|da|de)\b|\bdescontinu|\btroc\w* (?:o|a|do|da)\b`)
)

// CountVendorEvidence counts the news items that mention v by name or
// keyword. Each item counts at most once.
func CountVendorEvidence(v *catalog.Vendor, s *signals.Signals) int {
	n := 0
	for _, item := range s.News {
		if textnorm.ContainsAnyTerm(textnorm.Fold(item.Text()), v.Terms()...) {
			n++
		}
	}
	return n
}

// HasStrongNewsFor reports whether some news item pairs v with adoption
// language. An item that also carries abandonment language does not count.
func HasStrongNewsFor(v *catalog.Vendor, s *signals.Signals) bool {
	for _, item := range s.News {
		text := textnorm.Fold(item.Text())
		if !textnorm.ContainsAnyTerm(text, v.Terms()...) {
			continue
		}
		if negationRe.MatchString(text) {
			continue
		}
		if adoptionRe.MatchString(text) {
			return true
		}
	}
	return false
}

// mentionPoints maps a mention count onto the table, capping at its length.
func mentionPoints(count int, table []float64) float64 {
	if count <= 0 || len(table) == 0 {
		return 0
	}
	if count > len(table) {
		count = len(table)
	}
	return table[count-1]
}
