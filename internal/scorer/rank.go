package scorer

import (
	"fmt"
	"math"
	"sort"

	"github.com/sells-group/stack-radar/internal/config"
)

// topN is the length of every ranked list.
const topN = 3

// top3 returns the best three finite candidates, highest first, with
// confidence percentages assigned. Ties keep input order.
func top3(cands []ScoredCandidate) []ScoredCandidate {
	var ranked []ScoredCandidate
	for _, c := range cands {
		if !c.Excluded() {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RawScore > ranked[j].RawScore
	})
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	assignConfidence(ranked)
	return ranked
}

// assignConfidence maps raw scores of a ranked list onto rank-aware
// percentages. The spread is taken over the list itself.
func assignConfidence(ranked []ScoredCandidate) {
	if len(ranked) == 0 {
		return
	}
	lo, hi := ranked[0].RawScore, ranked[0].RawScore
	for _, c := range ranked[1:] {
		lo = math.Min(lo, c.RawScore)
		hi = math.Max(hi, c.RawScore)
	}
	spread := math.Max(1, hi-lo)

	for i := range ranked {
		rel := (ranked[i].RawScore - lo) / spread
		pct := int(math.Round(40 + rel*45))
		switch i {
		case 0:
			pct = max(pct, int(math.Round(62+rel*12)))
		case 1:
			pct = min(max(pct, 48), 80)
		case 2:
			pct = min(max(pct, 35), 68)
		}
		ranked[i].ConfidencePct = pct
	}
}

type gapReason struct {
	comp  Component
	delta float64
}

// explainGap says why lower ranked below higher, or returns "" when the
// gap is not worth explaining.
func explainGap(higher, lower *ScoredCandidate, cfg config.RankingConfig) string {
	var reasons []gapReason
	for _, comp := range Components {
		d := higher.Breakdown.Contribution(comp) - lower.Breakdown.Contribution(comp)
		if d >= cfg.SignificanceThreshold {
			reasons = append(reasons, gapReason{comp, d})
		}
	}
	sort.SliceStable(reasons, func(i, j int) bool {
		return reasons[i].delta > reasons[j].delta
	})
	if len(reasons) > cfg.MaxReasons {
		reasons = reasons[:cfg.MaxReasons]
	}

	if len(reasons) == 0 {
		gap := higher.RawScore - lower.RawScore
		if gap >= cfg.FallbackGap {
			return fmt.Sprintf("Ficou abaixo de %s pela soma de fatores (diferença de %.0f pts).", higher.Name, gap)
		}
		return ""
	}

	parts := make([]string, len(reasons))
	for i, r := range reasons {
		parts[i] = fmt.Sprintf("%s (+%.0f pts)", r.comp.Label(), r.delta)
	}
	return fmt.Sprintf("Ficou abaixo de %s por %s.", higher.Name, joinPT(parts))
}

// annotateGaps fills why_not_first on ranks 2 and 3 and why_not_second on
// rank 3.
func annotateGaps(ranked []ScoredCandidate, cfg config.RankingConfig) {
	for i := 1; i < len(ranked); i++ {
		ranked[i].WhyNotFirst = explainGap(&ranked[0], &ranked[i], cfg)
	}
	if len(ranked) > 2 {
		ranked[2].WhyNotSecond = explainGap(&ranked[1], &ranked[2], cfg)
	}
}
