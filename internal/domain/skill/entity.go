package skill

import (
	"time"

	"github.com/google/uuid"
)

// Kind separates hard (technical) from soft skills in the dictionary.
type Kind string

const (
	KindHard Kind = "hard"
	KindSoft Kind = "soft"
)

func ParseKind(s string) (Kind, bool) {
	switch Kind(Normalize(s)) {
	case KindHard:
		return KindHard, true
	case KindSoft:
		return KindSoft, true
	default:
		return "", false
	}
}

// Synonym is a stored synonym row.
type Synonym struct {
	ID        uuid.UUID
	Token     string
	ExpandsTo string
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Synonym) Row() SynonymRow {
	return SynonymRow{Token: s.Token, ExpandsTo: s.ExpandsTo, Category: s.Category}
}

// DictionaryEntry is one known skill token.
type DictionaryEntry struct {
	ID        uuid.UUID
	Token     string
	Kind      Kind
	CreatedAt time.Time
}

// Dictionary holds the known hard and soft skill tokens, normalized.
type Dictionary struct {
	Hard []string
	Soft []string
}

// Known returns every dictionary token as a set.
func (d Dictionary) Known() TokenSet {
	out := make(TokenSet, len(d.Hard)+len(d.Soft))
	for _, t := range d.Hard {
		out.Add(Normalize(t))
	}
	for _, t := range d.Soft {
		out.Add(Normalize(t))
	}
	return out
}
