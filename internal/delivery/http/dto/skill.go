package dto

import (
	"github.com/google/uuid"

	"skill-match/internal/domain/skill"
)

type AppendSkillsRequest struct {
	Kind   string   `json:"kind" validate:"required,oneof=hard soft"`
	Tokens []string `json:"tokens" validate:"required,min=1,max=500,dive,required,max=200"`
}

type AppendSkillsResponse struct {
	Kind  string `json:"kind"`
	Added int    `json:"added"`
}

type SkillResponse struct {
	ID    uuid.UUID `json:"id"`
	Token string    `json:"token"`
	Kind  string    `json:"kind"`
}

func NewSkillResponses(items []skill.DictionaryEntry) []SkillResponse {
	out := make([]SkillResponse, 0, len(items))
	for _, it := range items {
		out = append(out, SkillResponse{ID: it.ID, Token: it.Token, Kind: string(it.Kind)})
	}
	return out
}
