package matching

import (
	"math"
	"strings"

	"skill-match/internal/domain/skill"
)

// DefaultFuzzyThreshold is the ratio a keyword needs against some resume token
// to count as present.
const DefaultFuzzyThreshold = 0.9

type Importance string

const (
	ImportanceCritical  Importance = "critical"
	ImportancePreferred Importance = "preferred"
	ImportanceOptional  Importance = "optional"
)

var importanceWeights = map[Importance]float64{
	ImportanceCritical:  2.0,
	ImportancePreferred: 1.0,
	ImportanceOptional:  0.5,
}

const defaultWeight = 1.0

// ParseImportance maps free text to an Importance; unknown values yield "".
func ParseImportance(s string) Importance {
	imp := Importance(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := importanceWeights[imp]; ok {
		return imp
	}
	return ""
}

func (i Importance) Valid() bool {
	_, ok := importanceWeights[i]
	return ok
}

// KeywordRow is one required or desired term for a role. Importance is empty
// and Weight nil when the store has no value.
type KeywordRow struct {
	Keyword    string
	Importance Importance
	Weight     *float64
}

// ResolveWeight returns the row weight when it is a positive number and the
// importance default otherwise.
func ResolveWeight(row KeywordRow) float64 {
	if row.Weight != nil {
		w := *row.Weight
		if w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w) {
			return w
		}
	}
	if w, ok := importanceWeights[ParseImportance(string(row.Importance))]; ok {
		return w
	}
	return defaultWeight
}

type Result struct {
	Score         float64
	Matched       []string
	Missing       []string
	MatchedWeight float64
	TotalWeight   float64
	Coverage      float64
	Total         int
	Categories    map[string]string
}

type Engine struct {
	canonicalThreshold float64
	fuzzyThreshold     float64
}

type Option func(*Engine)

func WithCanonicalThreshold(t float64) Option {
	return func(e *Engine) { e.canonicalThreshold = t }
}

func WithFuzzyThreshold(t float64) Option {
	return func(e *Engine) { e.fuzzyThreshold = t }
}

func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		canonicalThreshold: skill.DefaultCanonicalThreshold,
		fuzzyThreshold:     DefaultFuzzyThreshold,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	if err := skill.ValidateThreshold(e.canonicalThreshold); err != nil {
		return nil, err
	}
	if err := skill.ValidateThreshold(e.fuzzyThreshold); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) CanonicalThreshold() float64 { return e.canonicalThreshold }

func (e *Engine) FuzzyThreshold() float64 { return e.fuzzyThreshold }

// Canonicalizer returns a canonicalizer over variants using the engine's
// canonicalization threshold.
func (e *Engine) Canonicalizer(variants *skill.VariantMap) *skill.Canonicalizer {
	c, _ := skill.NewCanonicalizer(variants, e.canonicalThreshold)
	return c
}

// Compute scores resumeSkills against keywords. The second return value is
// false when there is not enough signal to score: no resume tokens, no
// keywords, or no positive total weight.
func (e *Engine) Compute(resumeSkills []string, keywords []KeywordRow, variants *skill.VariantMap) (Result, bool) {
	if len(resumeSkills) == 0 || len(keywords) == 0 {
		return Result{}, false
	}

	canon := e.Canonicalizer(variants)
	return e.score(canon, canon.Skills(resumeSkills), keywords)
}

// ComputeCanonical scores resume tokens already folded with Canonicalizer.
func (e *Engine) ComputeCanonical(resume skill.TokenSet, keywords []KeywordRow, variants *skill.VariantMap) (Result, bool) {
	return e.score(e.Canonicalizer(variants), resume, keywords)
}

func (e *Engine) score(canon *skill.Canonicalizer, resume skill.TokenSet, keywords []KeywordRow) (Result, bool) {
	if len(resume) == 0 || len(keywords) == 0 {
		return Result{}, false
	}

	matched := make([]string, 0, len(keywords))
	missing := make([]string, 0, len(keywords))
	categories := map[string]string{}
	seen := make(map[string]struct{}, len(keywords))

	var matchedWeight, totalWeight float64

	for _, row := range keywords {
		raw := strings.TrimSpace(row.Keyword)
		if raw == "" {
			continue
		}
		// Rows that normalize to nothing dedupe on their raw text and always miss.
		key := skill.Normalize(raw)
		if key == "" {
			key = "\x00" + raw
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		k := canon.Token(raw)
		w := ResolveWeight(row)
		totalWeight += w

		if k != "" {
			if cat, ok := canon.Variants().Category(k); ok {
				categories[raw] = cat
			}
		}

		if k != "" && e.present(k, resume) {
			matched = append(matched, raw)
			matchedWeight += w
			continue
		}
		missing = append(missing, raw)
	}

	if totalWeight <= 0 {
		return Result{}, false
	}

	coverage := matchedWeight / totalWeight
	return Result{
		Score:         round2(coverage * 100),
		Matched:       matched,
		Missing:       missing,
		MatchedWeight: matchedWeight,
		TotalWeight:   totalWeight,
		Coverage:      coverage,
		Total:         len(matched) + len(missing),
		Categories:    categories,
	}, true
}

func (e *Engine) present(keyword string, resume skill.TokenSet) bool {
	if resume.Has(keyword) {
		return true
	}
	for token := range resume {
		if skill.Similar(keyword, token, e.fuzzyThreshold) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
