package textnorm

import (
	"math"
	"strconv"
	"strings"
)

// FormatInt renders n with "." as the thousands separator (1750 -> "1.750").
func FormatInt(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatBRL renders an amount in reais the way sales material abbreviates it:
// "R$ 1,2 bi", "R$ 350 mi", "R$ 800 mil".
func FormatBRL(v int64) string {
	switch {
	case v >= 1e9:
		return "R$ " + formatDecimal(float64(v)/1e9) + " bi"
	case v >= 1e6:
		return "R$ " + formatDecimal(float64(v)/1e6) + " mi"
	case v >= 1e3:
		return "R$ " + formatDecimal(float64(v)/1e3) + " mil"
	default:
		return "R$ " + strconv.FormatInt(v, 10)
	}
}

func formatDecimal(f float64) string {
	s := strconv.FormatFloat(math.Round(f*10)/10, 'f', -1, 64)
	return strings.Replace(s, ".", ",", 1)
}
