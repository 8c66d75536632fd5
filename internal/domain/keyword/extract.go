package keyword

import (
	"strings"

	"skill-match/internal/domain/skill"
)

// Extracted holds dictionary skills found in a text.
type Extracted struct {
	Hard []string
	Soft []string
}

// All returns hard then soft tokens.
func (e Extracted) All() []string {
	out := make([]string, 0, len(e.Hard)+len(e.Soft))
	out = append(out, e.Hard...)
	return append(out, e.Soft...)
}

func (e Extracted) Empty() bool {
	return len(e.Hard) == 0 && len(e.Soft) == 0
}

// Extract returns the dictionary phrases that occur whitespace-bounded in
// text. A token listed as both hard and soft is reported as hard only.
func Extract(text string, dict skill.Dictionary) Extracted {
	norm := skill.Normalize(text)
	if norm == "" {
		return Extracted{}
	}
	padded := pad(norm)

	hard := make(skill.TokenSet)
	for _, t := range dict.Hard {
		t = skill.Normalize(t)
		if t != "" && strings.Contains(padded, pad(t)) {
			hard.Add(t)
		}
	}
	soft := make(skill.TokenSet)
	for _, t := range dict.Soft {
		t = skill.Normalize(t)
		if t == "" || hard.Has(t) {
			continue
		}
		if strings.Contains(padded, pad(t)) {
			soft.Add(t)
		}
	}
	return Extracted{Hard: hard.Sorted(), Soft: soft.Sorted()}
}
