package painpoint

import (
	"math"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/sells-group/stack-radar/internal/textnorm"
)

// Via tells which stage produced a Resolution.
type Via string

const (
	ViaAlias    Via = "alias"
	ViaScore    Via = "score"
	ViaFallback Via = "fallback"
)

// Fixed confidences and scoring weights.
const (
	aliasConfidence    = 95
	fallbackConfidence = 20

	nameWeight    = 32.0
	aliasWeight   = 14.0
	keywordWeight = 9.0

	subAliasWeight   = 8.0
	subKeywordWeight = 5.0
	subBonusCap      = 16.0

	generalityPenalty = 6.0
	minScore          = 40.0
	highScore         = 55.0
	maxConfidence     = 99
)

// Options tunes a single resolution.
type Options struct {
	Debug bool
}

// EntryScore is the stage-two trace of one catalog entry.
type EntryScore struct {
	Segmento    string  `json:"segmento"`
	Eligible    bool    `json:"eligible"`
	NameHit     bool    `json:"name_hit"`
	AliasHits   int     `json:"alias_hits"`
	KeywordHits int     `json:"keyword_hits"`
	SubBonus    float64 `json:"sub_bonus"`
	Score       float64 `json:"score"`
}

// Debug explains how a Resolution was reached.
type Debug struct {
	Text       string       `json:"text"`
	AliasMatch string       `json:"alias_match,omitempty"`
	Scores     []EntryScore `json:"scores,omitempty"`
}

// Resolution is the resolved segment and its pain statement.
type Resolution struct {
	SegmentoResolvido string `json:"segmento_resolvido"`
	Dor               string `json:"dor"`
	Via               Via    `json:"via"`
	Confidence        int    `json:"confidence"`
	Debug             *Debug `json:"debug,omitempty"`
}

type entry struct {
	seg      *Segment
	name     string
	aliases  []string
	keywords []string
	neg      []string
	norm     float64
}

// Resolver matches free text against a segment catalog. It is read-only
// after construction and safe for concurrent use.
type Resolver struct {
	cat     *Catalog
	entries []entry
}

var parenRe = regexp.MustCompile(`\([^)]*\)`)

// NewResolver indexes cat. A nil catalog selects the embedded one.
func NewResolver(cat *Catalog) *Resolver {
	if cat == nil {
		cat = DefaultCatalog()
	}
	r := &Resolver{cat: cat, entries: make([]entry, 0, len(cat.Segments))}
	for i := range cat.Segments {
		s := &cat.Segments[i]
		e := entry{
			seg:      s,
			name:     textnorm.Fold(parenRe.ReplaceAllString(s.Segmento, " ")),
			aliases:  foldAll(s.Aliases),
			keywords: foldAll(s.Keywords),
			neg:      foldAll(s.NegKeywords),
		}
		e.norm = math.Sqrt(1 + float64(len(e.aliases))*0.6 + float64(len(e.keywords))*0.4)
		r.entries = append(r.entries, e)
	}
	return r
}

var (
	defaultResolverOnce sync.Once
	defaultResolver     *Resolver
)

// Default returns a resolver over the embedded catalog.
func Default() *Resolver {
	defaultResolverOnce.Do(func() {
		defaultResolver = NewResolver(DefaultCatalog())
	})
	return defaultResolver
}

// Catalog returns the catalog the resolver indexes.
func (r *Resolver) Catalog() *Catalog { return r.cat }

func foldAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if f := textnorm.Fold(s); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Resolve maps segmento and subsegmento to a catalog segment. It tries an
// exact alias match first, then weighted scoring, then the generic pain.
func (r *Resolver) Resolve(segmento, subsegmento string, opts Options) Resolution {
	text := textnorm.Fold(segmento + " " + subsegmento)
	sub := textnorm.Fold(subsegmento)

	var dbg *Debug
	if opts.Debug {
		dbg = &Debug{Text: text}
	}

	res := r.resolve(text, sub, dbg)
	res.Debug = dbg

	zap.L().Debug("painpoint: resolved",
		zap.String("text", text),
		zap.String("segmento", res.SegmentoResolvido),
		zap.String("via", string(res.Via)),
		zap.Int("confidence", res.Confidence),
	)
	return res
}

func (r *Resolver) resolve(text, sub string, dbg *Debug) Resolution {
	if text == "" {
		return r.fallback()
	}

	// Stage 1: exact alias, first entry in catalog order.
	for i := range r.entries {
		e := &r.entries[i]
		if e.seg.Generic || e.negated(text) {
			continue
		}
		for _, a := range e.aliases {
			if textnorm.ContainsTerm(text, a) {
				if dbg != nil {
					dbg.AliasMatch = a
				}
				return Resolution{
					SegmentoResolvido: e.seg.Segmento,
					Dor:               e.seg.Dor,
					Via:               ViaAlias,
					Confidence:        aliasConfidence,
				}
			}
		}
	}

	// Stage 2: weighted scoring.
	best := -1
	bestScore := math.Inf(-1)
	for i := range r.entries {
		sc := r.entries[i].score(text, sub)
		if dbg != nil {
			dbg.Scores = append(dbg.Scores, sc)
		}
		if sc.Eligible && sc.Score > bestScore {
			best, bestScore = i, sc.Score
		}
	}
	if best < 0 || bestScore < minScore {
		return r.fallback()
	}

	conf := int(math.Round(bestScore))
	if bestScore >= highScore {
		conf = min(maxConfidence, conf)
	}
	e := r.entries[best]
	return Resolution{
		SegmentoResolvido: e.seg.Segmento,
		Dor:               e.seg.Dor,
		Via:               ViaScore,
		Confidence:        conf,
	}
}

func (r *Resolver) fallback() Resolution {
	return Resolution{
		SegmentoResolvido: "",
		Dor:               r.cat.GenericDor,
		Via:               ViaFallback,
		Confidence:        fallbackConfidence,
	}
}

func (e *entry) negated(text string) bool {
	return textnorm.ContainsAnyTerm(text, e.neg...)
}

func (e *entry) score(text, sub string) EntryScore {
	sc := EntryScore{Segmento: e.seg.Segmento, Eligible: !e.negated(text)}
	if !sc.Eligible {
		return sc
	}

	sc.NameHit = e.name != "" && textnorm.ContainsTerm(text, e.name)
	sc.AliasHits = textnorm.CountTerms(text, e.aliases)
	sc.KeywordHits = textnorm.CountTerms(text, e.keywords)

	raw := float64(sc.AliasHits)*aliasWeight + float64(sc.KeywordHits)*keywordWeight
	if sc.NameHit {
		raw += nameWeight
	}

	if strings.TrimSpace(sub) != "" {
		aliasBonus := math.Min(subBonusCap, float64(textnorm.CountTerms(sub, e.aliases))*subAliasWeight)
		kwBonus := math.Min(subBonusCap, float64(textnorm.CountTerms(sub, e.keywords))*subKeywordWeight)
		sc.SubBonus = math.Min(subBonusCap, aliasBonus+kwBonus)
		raw += sc.SubBonus
	}

	if sc.AliasHits+sc.KeywordHits < 2 && !sc.NameHit {
		raw -= generalityPenalty
	}

	sc.Score = math.Round(raw/e.norm*100) / 100
	return sc
}
