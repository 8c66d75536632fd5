package match

import (
	"github.com/google/uuid"

	"skill-match/internal/domain/matching"
)

const (
	ReasonNoRole             = "no role selected"
	ReasonNoKeywords         = "no JD keywords defined"
	ReasonNoText             = "no extracted text"
	ReasonNoScoreableKeyword = "no scoreable keywords"
)

// Outcome is the result of scoring one resume against one role. Result is
// nil when there was not enough signal, and Reason says why.
type Outcome struct {
	ResumeID       uuid.UUID
	CandidateName  string
	Role           string
	Result         *matching.Result
	Reason         string
	DerivedKeyword bool
}

func (o Outcome) Scored() bool {
	return o.Result != nil
}

func Scored(result matching.Result) Outcome {
	return Outcome{Result: &result}
}

func Unscored(reason string) Outcome {
	return Outcome{Reason: reason}
}
