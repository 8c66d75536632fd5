// Package discovery mines resume text for skill-like phrases that are not yet
// in the dictionary.
package discovery

import (
	"sort"
	"strings"
	"unicode"

	"skill-match/internal/domain/skill"
)

const (
	DefaultMaxPhrases = 200

	minPhraseLen   = 6
	maxSingleLen   = 6
	maxGram        = 4
	snippetRadius  = 40
	symbolChars    = "+#./-"
	scorePerDoc    = 10
	scoreInJD      = 15
	scoreHasDigit  = 5
	scoreHasSymbol = 5
)

// Candidate is a phrase seen in the corpus that is not a known skill.
type Candidate struct {
	Skill   string `json:"skill"`
	Docs    int    `json:"docs"`
	InJD    bool   `json:"in_jd"`
	Score   int    `json:"score"`
	Example string `json:"example"`
}

type tally struct {
	docs    int
	example string
}

// Discover ranks unknown phrases by how many documents mention them. When
// jdText is non-empty, phrases that also appear in it are boosted.
func Discover(corpus []string, known skill.TokenSet, jdText string, max int) []Candidate {
	if max <= 0 {
		max = DefaultMaxPhrases
	}

	seen := map[string]*tally{}
	for _, doc := range corpus {
		norm := skill.Normalize(doc)
		if norm == "" {
			continue
		}
		for phrase := range phrases(norm) {
			if known.Has(phrase) {
				continue
			}
			t, ok := seen[phrase]
			if !ok {
				t = &tally{example: snippet(norm, phrase)}
				seen[phrase] = t
			}
			t.docs++
		}
	}
	if len(seen) == 0 {
		return nil
	}

	jd := ""
	if n := skill.Normalize(jdText); n != "" {
		jd = " " + n + " "
	}

	out := make([]Candidate, 0, len(seen))
	for phrase, t := range seen {
		c := Candidate{
			Skill:   phrase,
			Docs:    t.docs,
			InJD:    jd != "" && strings.Contains(jd, " "+phrase+" "),
			Example: t.example,
		}
		c.Score = score(c)
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Docs != b.Docs {
			return a.Docs > b.Docs
		}
		return a.Skill > b.Skill
	})
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func score(c Candidate) int {
	s := c.Docs * scorePerDoc
	if c.InJD {
		s += scoreInJD
	}
	if hasDigit(c.Skill) {
		s += scoreHasDigit
	}
	if strings.ContainsAny(c.Skill, symbolChars) {
		s += scoreHasSymbol
	}
	return s
}

// phrases returns the distinct candidate phrases of one normalized document.
func phrases(norm string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, seg := range segments(norm) {
		for i, tok := range seg {
			if skillLike(tok) {
				out[tok] = struct{}{}
			}
			for n := 2; n <= maxGram && i+n <= len(seg); n++ {
				p := strings.Join(seg[i:i+n], " ")
				if len(p) >= minPhraseLen {
					out[p] = struct{}{}
				}
			}
		}
	}
	return out
}

// segments splits the token stream at stopwords and at tokens that are pure
// punctuation, so n-grams never span them.
func segments(norm string) [][]string {
	var (
		out [][]string
		cur []string
	)
	flush := func() {
		if len(cur) > 0 {
			out = append(out, cur)
			cur = nil
		}
	}
	for _, raw := range strings.Fields(norm) {
		tok := trimEdges(raw)
		if tok == "" || !hasAlnum(tok) || isStopword(tok) {
			flush()
			continue
		}
		cur = append(cur, tok)
	}
	flush()
	return out
}

// trimEdges drops sentence punctuation. A leading dot is kept for names
// like ".net".
func trimEdges(tok string) string {
	tok = strings.TrimRight(tok, ".-/")
	return strings.TrimLeft(tok, "-/")
}

func skillLike(tok string) bool {
	return hasDigit(tok) || strings.ContainsAny(tok, symbolChars) || len(tok) <= maxSingleLen
}

func snippet(norm, phrase string) string {
	idx := strings.Index(" "+norm+" ", " "+phrase+" ")
	if idx < 0 {
		idx = strings.Index(norm, phrase)
	}
	if idx < 0 {
		idx = 0
	}
	start := idx - snippetRadius
	if start < 0 {
		start = 0
	}
	end := idx + len(phrase) + snippetRadius
	if end > len(norm) {
		end = len(norm)
	}
	return strings.TrimSpace(norm[start:end])
}

func hasDigit(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func hasAlnum(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) >= 0
}
