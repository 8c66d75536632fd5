// Package keyword derives role keyword rows from job descriptions and picks
// known skills out of resume text.
package keyword

import (
	"sort"
	"strings"

	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/skill"
)

const DefaultMaxKeywords = 40

// Derive builds fallback keyword rows for a role without a curated list. Known
// dictionary and variant tokens found in jdText become preferred rows with
// weight 1.0. Longer phrases are tested first so they survive the cap.
func Derive(jdText string, dict skill.Dictionary, variants *skill.VariantMap, max int) []matching.KeywordRow {
	if max <= 0 {
		max = DefaultMaxKeywords
	}
	text := pad(skill.Normalize(jdText))
	if text == "  " {
		return nil
	}

	vocab := vocabulary(dict, variants)
	out := make([]matching.KeywordRow, 0, max)
	emitted := make(map[string]struct{}, max)

	for _, tok := range vocab {
		if !strings.Contains(text, pad(tok)) {
			continue
		}
		key := tok
		if c, ok := variants.Lookup(tok); ok {
			key = c
		}
		if _, dup := emitted[key]; dup {
			continue
		}
		emitted[key] = struct{}{}

		w := 1.0
		out = append(out, matching.KeywordRow{
			Keyword:    tok,
			Importance: matching.ImportancePreferred,
			Weight:     &w,
		})
		if len(out) >= max {
			break
		}
	}
	return out
}

// vocabulary returns the normalized union of the dictionary and the variant
// map, ordered by word count, then length, both descending, then lexically.
func vocabulary(dict skill.Dictionary, variants *skill.VariantMap) []string {
	set := make(skill.TokenSet, len(dict.Hard)+len(dict.Soft)+variants.Len())
	for _, t := range dict.Hard {
		set.Add(skill.Normalize(t))
	}
	for _, t := range dict.Soft {
		set.Add(skill.Normalize(t))
	}
	for _, k := range variants.Keys() {
		set.Add(k)
		if c, ok := variants.Lookup(k); ok {
			set.Add(c)
		}
	}

	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		wi, wj := wordCount(out[i]), wordCount(out[j])
		if wi != wj {
			return wi > wj
		}
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

func wordCount(s string) int {
	return strings.Count(s, " ") + 1
}

func pad(s string) string {
	return " " + s + " "
}
