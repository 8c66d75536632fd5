package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill-match/internal/domain/match"
	"skill-match/internal/domain/matching"
	"skill-match/internal/domain/resume"
	"skill-match/internal/domain/role"
	"skill-match/internal/domain/skill"
)

type matchingFixture struct {
	roles    *fakeRoleRepo
	resumes  *fakeResumeRepo
	skills   *fakeSkillRepo
	variants *fakeVariants
	uc       *Matching
}

func newMatchingFixture(t *testing.T) *matchingFixture {
	t.Helper()
	engine, err := matching.NewEngine()
	require.NoError(t, err)

	f := &matchingFixture{
		roles:    newFakeRoleRepo(),
		resumes:  &fakeResumeRepo{},
		skills:   &fakeSkillRepo{dict: skill.Dictionary{Hard: []string{"python", "sql", "nlp"}, Soft: []string{"communication"}}},
		variants: &fakeVariants{vm: skill.BuildVariantMap([]skill.SynonymRow{{Token: "ml", ExpandsTo: "machine learning"}})},
	}
	f.uc = NewMatchingUsecase(engine, f.variants, f.roles, f.resumes, f.skills, MatchingOptions{Concurrency: 2}, nil)
	return f
}

func (f *matchingFixture) dataScientist() role.Role {
	return f.roles.addRole("Data Scientist", "",
		role.Keyword{Keyword: "python", Importance: strPtr("critical")},
		role.Keyword{Keyword: "nlp", Importance: strPtr("preferred")},
	)
}

func TestMatchingUsecase_ScoreTokens(t *testing.T) {
	f := newMatchingFixture(t)
	f.dataScientist()

	out, err := f.uc.ScoreTokens(context.Background(), "data scientist", []string{"python", "machine learning"})
	require.NoError(t, err)
	require.True(t, out.Scored())
	assert.Equal(t, "Data Scientist", out.Role)
	assert.Equal(t, 66.67, out.Result.Score)
	assert.Equal(t, []string{"python"}, out.Result.Matched)
	assert.Equal(t, []string{"nlp"}, out.Result.Missing)
	assert.False(t, out.DerivedKeyword)
	assert.Zero(t, f.skills.loads)
}

func TestMatchingUsecase_ScoreTokensUnscored(t *testing.T) {
	f := newMatchingFixture(t)
	ctx := context.Background()
	f.dataScientist()
	f.roles.addRole("Empty", "")
	f.roles.addRole("Noise", "", role.Keyword{Keyword: "!!!"})

	out, err := f.uc.ScoreTokens(ctx, "  ", []string{"python"})
	require.NoError(t, err)
	assert.Equal(t, match.ReasonNoRole, out.Reason)

	_, err = f.uc.ScoreTokens(ctx, "astronaut", []string{"python"})
	assert.ErrorIs(t, err, ErrNotFound)

	out, err = f.uc.ScoreTokens(ctx, "empty", []string{"python"})
	require.NoError(t, err)
	assert.False(t, out.Scored())
	assert.Equal(t, match.ReasonNoKeywords, out.Reason)

	out, err = f.uc.ScoreTokens(ctx, "data scientist", nil)
	require.NoError(t, err)
	assert.Equal(t, match.ReasonNoText, out.Reason)

	out, err = f.uc.ScoreTokens(ctx, "data scientist", []string{"???", " @@ "})
	require.NoError(t, err)
	assert.False(t, out.Scored())
	assert.Equal(t, match.ReasonNoText, out.Reason)

	out, err = f.uc.ScoreTokens(ctx, "noise", []string{"python"})
	require.NoError(t, err)
	require.True(t, out.Scored())
	assert.Equal(t, 0.0, out.Result.Score)
	assert.Equal(t, []string{"!!!"}, out.Result.Missing)
}

func TestMatchingUsecase_DerivesKeywordsFromJD(t *testing.T) {
	f := newMatchingFixture(t)
	f.roles.addRole("Analyst", "We want strong Python and SQL, plus great communication skills")

	out, err := f.uc.ScoreTokens(context.Background(), "analyst", []string{"python", "sql"})
	require.NoError(t, err)
	require.True(t, out.Scored())
	assert.True(t, out.DerivedKeyword)
	assert.ElementsMatch(t, []string{"python", "sql"}, out.Result.Matched)
	assert.Equal(t, []string{"communication"}, out.Result.Missing)
	assert.Equal(t, 66.67, out.Result.Score)
}

func TestMatchingUsecase_ScoreResume(t *testing.T) {
	f := newMatchingFixture(t)
	ctx := context.Background()
	f.dataScientist()

	withTokens, _ := f.resumes.Create(ctx, resume.Resume{
		CandidateName: "Ana",
		SelectedRole:  strPtr("Data Scientist"),
		SkillsHard:    []string{"python", "nlp"},
	})
	fromText, _ := f.resumes.Create(ctx, resume.Resume{
		CandidateName: "Budi",
		SelectedRole:  strPtr("data scientist"),
		Text:          "Five years of Python scripting and SQL reporting.",
	})
	noRole, _ := f.resumes.Create(ctx, resume.Resume{CandidateName: "Citra", SkillsHard: []string{"python"}})
	unknownRole, _ := f.resumes.Create(ctx, resume.Resume{CandidateName: "Dewi", SelectedRole: strPtr("pilot"), SkillsHard: []string{"python"}})
	blank, _ := f.resumes.Create(ctx, resume.Resume{CandidateName: "Eko", SelectedRole: strPtr("Data Scientist")})

	out, err := f.uc.ScoreResume(ctx, withTokens.ID)
	require.NoError(t, err)
	require.True(t, out.Scored())
	assert.Equal(t, 100.0, out.Result.Score)
	assert.Equal(t, "Ana", out.CandidateName)
	assert.Equal(t, withTokens.ID, out.ResumeID)

	out, err = f.uc.ScoreResume(ctx, fromText.ID)
	require.NoError(t, err)
	require.True(t, out.Scored())
	assert.Equal(t, 66.67, out.Result.Score)

	out, err = f.uc.ScoreResume(ctx, noRole.ID)
	require.NoError(t, err)
	assert.Equal(t, match.ReasonNoRole, out.Reason)

	out, err = f.uc.ScoreResume(ctx, unknownRole.ID)
	require.NoError(t, err)
	assert.Equal(t, match.ReasonNoKeywords, out.Reason)
	assert.Equal(t, "pilot", out.Role)

	out, err = f.uc.ScoreResume(ctx, blank.ID)
	require.NoError(t, err)
	assert.Equal(t, match.ReasonNoText, out.Reason)

	_, err = f.uc.ScoreResume(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.uc.ScoreResume(ctx, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMatchingUsecase_RankRole(t *testing.T) {
	f := newMatchingFixture(t)
	ctx := context.Background()
	f.dataScientist()

	for _, r := range []resume.Resume{
		{CandidateName: "Half", SkillsHard: []string{"nlp"}},
		{CandidateName: "Nothing"},
		{CandidateName: "Full", SkillsHard: []string{"python", "nlp"}},
		{CandidateName: "Most", SkillsHard: []string{"python"}},
	} {
		r.SelectedRole = strPtr("Data Scientist")
		_, err := f.resumes.Create(ctx, r)
		require.NoError(t, err)
	}
	_, _ = f.resumes.Create(ctx, resume.Resume{CandidateName: "Other", SelectedRole: strPtr("pilot"), SkillsHard: []string{"python"}})

	ranked, err := f.uc.RankRole(ctx, "data scientist", 10)
	require.NoError(t, err)
	require.Len(t, ranked, 4)

	names := make([]string, 0, len(ranked))
	for _, o := range ranked {
		names = append(names, o.CandidateName)
	}
	assert.Equal(t, []string{"Full", "Most", "Half", "Nothing"}, names)
	assert.Equal(t, 100.0, ranked[0].Result.Score)
	assert.Equal(t, 66.67, ranked[1].Result.Score)
	assert.Equal(t, 33.33, ranked[2].Result.Score)
	assert.Equal(t, match.ReasonNoText, ranked[3].Reason)

	_, err = f.uc.RankRole(ctx, "pilot", 10)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.uc.RankRole(ctx, "", 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMatchingUsecase_RankRoleStoreFailure(t *testing.T) {
	f := newMatchingFixture(t)
	f.dataScientist()
	f.resumes.err = errStore

	_, err := f.uc.RankRole(context.Background(), "data scientist", 10)
	assert.ErrorIs(t, err, ErrInternal)
}
