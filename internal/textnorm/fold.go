// Package textnorm folds Portuguese free text and parses the money and
// headcount figures embedded in it.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases s, strips diacritics and collapses runs of whitespace.
// "Serviços  Públicos" folds to "servicos publicos".
func Fold(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}

// ContainsTerm reports whether term occurs in text as a whole term: the
// characters around the match must not be letters or digits. Both arguments
// are expected to be folded already.
func ContainsTerm(text, term string) bool {
	if term == "" || len(term) > len(text) {
		return false
	}
	from := 0
	for from <= len(text)-len(term) {
		i := strings.Index(text[from:], term)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(term)
		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}
		from = start + 1
	}
	return false
}

// CountTerms returns how many of terms occur in text.
func CountTerms(text string, terms []string) int {
	n := 0
	for _, t := range terms {
		if ContainsTerm(text, t) {
			n++
		}
	}
	return n
}

// ContainsAnyTerm reports whether any of terms occurs in text.
func ContainsAnyTerm(text string, terms ...string) bool {
	for _, t := range terms {
		if ContainsTerm(text, t) {
			return true
		}
	}
	return false
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !isWordRune(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
