package skill

import (
	"errors"
	"fmt"
	"math"
)

// DefaultCanonicalThreshold tolerates minor misspellings and plurals while
// rejecting distinct terms.
const DefaultCanonicalThreshold = 0.88

var ErrInvalidThreshold = errors.New("threshold must be within [0, 1]")

// ValidateThreshold reports whether t is a usable similarity threshold.
func ValidateThreshold(t float64) error {
	if math.IsNaN(t) || t < 0 || t > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, t)
	}
	return nil
}

// Canonicalizer maps raw tokens to canonical tokens using a variant map and a
// fuzzy fallback over its keys.
type Canonicalizer struct {
	variants  *VariantMap
	threshold float64
}

func NewCanonicalizer(variants *VariantMap, threshold float64) (*Canonicalizer, error) {
	if err := ValidateThreshold(threshold); err != nil {
		return nil, err
	}
	if variants == nil {
		variants = EmptyVariantMap()
	}
	return &Canonicalizer{variants: variants, threshold: threshold}, nil
}

func (c *Canonicalizer) Threshold() float64 { return c.threshold }

func (c *Canonicalizer) Variants() *VariantMap { return c.variants }

// Token returns the canonical form of raw. Unknown tokens canonicalize to
// their normalized form so they still take part in matching literally.
func (c *Canonicalizer) Token(raw string) string {
	norm := Normalize(raw)
	if norm == "" {
		return ""
	}
	if canonical, ok := c.variants.Lookup(norm); ok {
		return canonical
	}
	if key, ok := c.bestKey(norm); ok {
		canonical, _ := c.variants.Lookup(key)
		return canonical
	}
	return norm
}

// Skills canonicalizes every raw token into a set.
func (c *Canonicalizer) Skills(raw []string) TokenSet {
	out := make(TokenSet, len(raw))
	for _, r := range raw {
		out.Add(c.Token(r))
	}
	return out
}

// bestKey scans keys in their pinned order and keeps the first key with the
// highest ratio. Keys whose length bound cannot reach the threshold or beat
// the current best are skipped without changing the outcome.
func (c *Canonicalizer) bestKey(norm string) (string, bool) {
	n := runeLen(norm)
	bestKey := ""
	bestRatio := 0.0
	for _, key := range c.variants.Keys() {
		bound := ratioUpperBound(n, runeLen(key))
		if bound < c.threshold || bound <= bestRatio {
			continue
		}
		r := Ratio(norm, key)
		if r > bestRatio {
			bestRatio = r
			bestKey = key
		}
	}
	if bestKey == "" || bestRatio < c.threshold {
		return "", false
	}
	return bestKey, true
}

// Similar reports whether a and b reach threshold under Ratio(a, b).
func Similar(a, b string, threshold float64) bool {
	if a == b {
		return true
	}
	if ratioUpperBound(runeLen(a), runeLen(b)) < threshold {
		return false
	}
	return Ratio(a, b) >= threshold
}
