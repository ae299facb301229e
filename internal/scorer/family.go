package scorer

import "github.com/sells-group/stack-radar/internal/signals"

// preferredVariant returns the variant the profile leans to within family,
// or "" when there is no inference.
func preferredVariant(family string, s *signals.Signals) string {
	switch family {
	case familySAPCore:
		return string(s.SAPCorePreference)
	case familyTOTVS:
		return string(s.TOTVSPreference)
	default:
		return ""
	}
}

// collapseFamilies keeps one ranked candidate per product family: the
// preferred variant when it scored, else the highest score, with ties going
// to catalog order. Excluded candidates pass through untouched.
func collapseFamilies(cands []ScoredCandidate, s *signals.Signals) []ScoredCandidate {
	keep := make(map[string]int)
	for i := range cands {
		c := &cands[i]
		fam := c.Vendor.Family
		if fam == "" || c.Excluded() {
			continue
		}
		cur, ok := keep[fam]
		if !ok {
			keep[fam] = i
			continue
		}
		pref := preferredVariant(fam, s)
		curPreferred := pref != "" && cands[cur].Vendor.Variant == pref
		thisPreferred := pref != "" && c.Vendor.Variant == pref
		switch {
		case curPreferred:
		case thisPreferred:
			keep[fam] = i
		case c.RawScore > cands[cur].RawScore:
			keep[fam] = i
		}
	}

	out := make([]ScoredCandidate, 0, len(cands))
	for i := range cands {
		c := cands[i]
		fam := c.Vendor.Family
		if fam != "" && !c.Excluded() && keep[fam] != i {
			continue
		}
		out = append(out, c)
	}
	return out
}
