// Package skill turns free-text skill tokens into canonical, comparable forms.
package skill

import (
	"sort"
	"strings"
)

// Normalize lowercases text, replaces every rune outside [a-z0-9+#./- ] with a
// space, collapses whitespace and trims. It is idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	b := strings.Builder{}
	b.Grow(len(text))
	lastWasSpace := true

	for _, r := range text {
		if isTokenRune(r) {
			b.WriteRune(r)
			lastWasSpace = false
			continue
		}
		if lastWasSpace {
			continue
		}
		b.WriteByte(' ')
		lastWasSpace = true
	}

	return strings.TrimRight(b.String(), " ")
}

func isTokenRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	}
	switch r {
	case '+', '#', '.', '/', '-':
		return true
	}
	return false
}

// TokenSet is a deduplicated set of canonical tokens.
type TokenSet map[string]struct{}

func (s TokenSet) Add(token string) {
	if token == "" {
		return
	}
	s[token] = struct{}{}
}

func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Sorted returns the members in lexical order.
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
