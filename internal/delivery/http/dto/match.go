package dto

import (
	"github.com/google/uuid"

	"skill-match/internal/domain/match"
)

type MatchRequest struct {
	Role   string   `json:"role" validate:"max=200"`
	Skills []string `json:"skills" validate:"max=1000,dive,max=200"`
}

type MatchResponse struct {
	ResumeID        *uuid.UUID        `json:"resume_id,omitempty"`
	CandidateName   string            `json:"candidate_name,omitempty"`
	Role            string            `json:"role,omitempty"`
	Scored          bool              `json:"scored"`
	Reason          string            `json:"reason,omitempty"`
	Score           *float64          `json:"score"`
	Matched         []string          `json:"matched"`
	Missing         []string          `json:"missing"`
	MatchedWeight   float64           `json:"matched_weight"`
	TotalWeight     float64           `json:"total_weight"`
	Coverage        float64           `json:"coverage"`
	Total           int               `json:"total"`
	Categories      map[string]string `json:"categories,omitempty"`
	DerivedKeywords bool              `json:"derived_keywords"`
}

// NewMatchResponse flattens an outcome. Unscored outcomes carry a nil score
// and the reason, never a zero score.
func NewMatchResponse(o match.Outcome) MatchResponse {
	out := MatchResponse{
		CandidateName:   o.CandidateName,
		Role:            o.Role,
		Scored:          o.Scored(),
		Reason:          o.Reason,
		Matched:         []string{},
		Missing:         []string{},
		DerivedKeywords: o.DerivedKeyword,
	}
	if o.ResumeID != uuid.Nil {
		id := o.ResumeID
		out.ResumeID = &id
	}
	if r := o.Result; r != nil {
		score := r.Score
		out.Score = &score
		out.Matched = append(out.Matched, r.Matched...)
		out.Missing = append(out.Missing, r.Missing...)
		out.MatchedWeight = r.MatchedWeight
		out.TotalWeight = r.TotalWeight
		out.Coverage = r.Coverage
		out.Total = r.Total
		if len(r.Categories) > 0 {
			out.Categories = r.Categories
		}
	}
	return out
}

func NewMatchResponses(items []match.Outcome) []MatchResponse {
	out := make([]MatchResponse, 0, len(items))
	for _, o := range items {
		out = append(out, NewMatchResponse(o))
	}
	return out
}

type DiscoveryRequest struct {
	JDText string `json:"jd_text" validate:"max=200000"`
	Max    int    `json:"max" validate:"gte=0,lte=1000"`
}
