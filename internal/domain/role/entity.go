package role

import (
	"time"

	"github.com/google/uuid"

	"skill-match/internal/domain/matching"
)

type Role struct {
	ID        uuid.UUID
	Name      string
	JDText    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Keyword is a stored keyword row of a role.
type Keyword struct {
	ID         uuid.UUID
	RoleID     uuid.UUID
	Keyword    string
	Importance *string
	Weight     *float64
	CreatedAt  time.Time
}

// Row converts the stored keyword into an engine row. Unknown importance
// values are passed through empty so the engine falls back to its default.
func (k Keyword) Row() matching.KeywordRow {
	row := matching.KeywordRow{Keyword: k.Keyword, Weight: k.Weight}
	if k.Importance != nil {
		row.Importance = matching.ParseImportance(*k.Importance)
	}
	return row
}

func Rows(keywords []Keyword) []matching.KeywordRow {
	out := make([]matching.KeywordRow, 0, len(keywords))
	for _, k := range keywords {
		out = append(out, k.Row())
	}
	return out
}
