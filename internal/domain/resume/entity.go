package resume

import (
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID            uuid.UUID
	CandidateName string
	SelectedRole  *string
	Text          string
	SkillsHard    []string
	SkillsSoft    []string
	CreatedAt     time.Time
}

// Skills returns the extracted hard and soft tokens together.
func (r Resume) Skills() []string {
	out := make([]string, 0, len(r.SkillsHard)+len(r.SkillsSoft))
	out = append(out, r.SkillsHard...)
	return append(out, r.SkillsSoft...)
}
