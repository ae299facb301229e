package textnorm

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const numberPattern = `\d+(?:[.,]\d+)*`

var (
	numberRe = regexp.MustCompile(numberPattern)
	moneyRe  = regexp.MustCompile(`(` + numberPattern + `)(?:\s*(k|mi|mm|bi|bilh(?:ao|oes)|milh(?:ao|oes)|mil)\b)?`)

	compactHeadRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*k\b`)
	rangeHeadRe   = regexp.MustCompile(`(` + numberPattern + `)(?:\s*(k|mil)\b)?\s*(?:-|–|—|\ba\b|\bate\b|\bto\b)\s*(` + numberPattern + `)(?:\s*(k|mil)\b)?`)
	plusHeadRe    = regexp.MustCompile(`(` + numberPattern + `)\s*\+`)
	milHeadRe     = regexp.MustCompile(`(` + numberPattern + `)\s*mil\b`)
)

func moneyMultiplier(unit string) float64 {
	switch unit {
	case "k", "mil":
		return 1e3
	case "mi", "mm", "milhao", "milhoes":
		return 1e6
	case "bi", "bilhao", "bilhoes":
		return 1e9
	default:
		return 1
	}
}

// ParseMoneyAmount extracts a currency amount from free text using Brazilian
// numeral conventions. "R$ 1,2 bi" yields 1200000000 and "R$ 1.500.000"
// yields 1500000. The leftmost number carrying a magnitude wins; without one
// the first number is read as is. It returns 0 when no amount can be read.
func ParseMoneyAmount(text string) int64 {
	t := Fold(text)
	if t == "" {
		return 0
	}

	matches := moneyRe.FindAllStringSubmatch(t, -1)
	if len(matches) == 0 {
		return 0
	}
	m := matches[0]
	for _, cand := range matches {
		if cand[2] != "" {
			m = cand
			break
		}
	}

	v, ok := parseLocaleNumber(m[1])
	if !ok {
		return 0
	}
	return toAmount(v * moneyMultiplier(m[2]))
}

// ParseHeadcount extracts an employee count from free text. Ranges resolve to
// their midpoint ("800-1200" and "1k-2k" alike), "1.2k" is 1200 and "500+"
// is 500. It returns 0 when no count can be read.
func ParseHeadcount(text string) int {
	t := Fold(text)
	if t == "" {
		return 0
	}

	if m := rangeHeadRe.FindStringSubmatch(t); m != nil {
		lo, okLo := parseLocaleNumber(m[1])
		hi, okHi := parseLocaleNumber(m[3])
		if okLo && okHi {
			loUnit, hiUnit := m[2], m[4]
			// "1 a 2 mil" shares the upper unit.
			if loUnit == "" && hiUnit != "" && lo < hi {
				loUnit = hiUnit
			}
			return toCount((lo*moneyMultiplier(loUnit) + hi*moneyMultiplier(hiUnit)) / 2)
		}
	}

	if m := compactHeadRe.FindStringSubmatch(t); m != nil {
		if v, ok := parseLocaleNumber(m[1]); ok {
			return toCount(v * 1000)
		}
	}

	if m := plusHeadRe.FindStringSubmatch(t); m != nil {
		if v, ok := parseLocaleNumber(m[1]); ok {
			return toCount(v)
		}
	}

	if m := milHeadRe.FindStringSubmatch(t); m != nil {
		if v, ok := parseLocaleNumber(m[1]); ok {
			return toCount(v * 1000)
		}
	}

	if tok := numberRe.FindString(t); tok != "" {
		if v, ok := parseLocaleNumber(tok); ok {
			return toCount(v)
		}
	}
	return 0
}

// parseLocaleNumber reads a number that may use either "." or "," as the
// decimal or thousands separator. When both appear, the last one is the
// decimal mark. A single kind of separator is a thousands separator when it
// repeats or when exactly three digits follow it.
func parseLocaleNumber(tok string) (float64, bool) {
	dots := strings.Count(tok, ".")
	commas := strings.Count(tok, ",")

	intPart, frac := tok, ""
	switch {
	case dots > 0 && commas > 0:
		dec := strings.LastIndexAny(tok, ".,")
		intPart = stripSeparators(tok[:dec])
		frac = tok[dec+1:]
	case dots > 0 || commas > 0:
		sep := "."
		if commas > 0 {
			sep = ","
		}
		groups := strings.Split(tok, sep)
		if len(groups) > 2 || len(groups[1]) == 3 {
			intPart = strings.Join(groups, "")
		} else {
			intPart, frac = groups[0], groups[1]
		}
	}

	s := intPart
	if frac != "" {
		s += "." + frac
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func stripSeparators(s string) string {
	return strings.NewReplacer(".", "", ",", "").Replace(s)
}

func toAmount(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v >= math.MaxInt64 {
		return 0
	}
	return int64(math.Round(v))
}

func toCount(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v >= math.MaxInt32 {
		return 0
	}
	return int(math.Round(v))
}
