package dto

import (
	"time"

	"github.com/google/uuid"

	"skill-match/internal/domain/skill"
)

type SynonymRequest struct {
	Token     string `json:"token" validate:"required,max=200"`
	ExpandsTo string `json:"expands_to" validate:"max=200"`
	Category  string `json:"category" validate:"max=100"`
}

type SynonymResponse struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	ExpandsTo string    `json:"expands_to,omitempty"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewSynonymResponse(s skill.Synonym) SynonymResponse {
	return SynonymResponse{
		ID:        s.ID,
		Token:     s.Token,
		ExpandsTo: s.ExpandsTo,
		Category:  s.Category,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

type ResolveResponse struct {
	Canonical map[string]string `json:"canonical"`
}
