package dto

import (
	"time"

	"github.com/google/uuid"

	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/role"
)

type RoleRequest struct {
	JDText string `json:"jd_text" validate:"max=100000"`
}

type RoleResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	JDText    string    `json:"jd_text"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewRoleResponse(r role.Role) RoleResponse {
	return RoleResponse{ID: r.ID, Name: r.Name, JDText: r.JDText, UpdatedAt: r.UpdatedAt}
}

type KeywordRequest struct {
	ID         string   `json:"id" validate:"omitempty,uuid"`
	Keyword    string   `json:"keyword" validate:"required,max=200"`
	Importance string   `json:"importance" validate:"max=32"`
	Weight     *float64 `json:"weight" validate:"omitempty,gt=0"`
}

type KeywordResponse struct {
	ID         uuid.UUID `json:"id"`
	Keyword    string    `json:"keyword"`
	Importance *string   `json:"importance"`
	Weight     *float64  `json:"weight"`
	Effective  float64   `json:"effective_weight"`
}

func NewKeywordResponse(k role.Keyword) KeywordResponse {
	return KeywordResponse{
		ID:         k.ID,
		Keyword:    k.Keyword,
		Importance: k.Importance,
		Weight:     k.Weight,
		Effective:  matching.ResolveWeight(k.Row()),
	}
}

type DeriveRequest struct {
	Role string `json:"role" validate:"max=200"`
	URL  string `json:"url" validate:"omitempty,url,max=2048"`
	Text string `json:"text" validate:"max=200000"`
	Max  int    `json:"max" validate:"gte=0,lte=500"`
}

type KeywordRowResponse struct {
	Keyword    string  `json:"keyword"`
	Importance string  `json:"importance"`
	Weight     float64 `json:"weight"`
}

func NewKeywordRowResponses(rows []matching.KeywordRow) []KeywordRowResponse {
	out := make([]KeywordRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, KeywordRowResponse{
			Keyword:    r.Keyword,
			Importance: string(r.Importance),
			Weight:     matching.ResolveWeight(r),
		})
	}
	return out
}
