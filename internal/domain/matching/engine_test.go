package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill-match/internal/domain/skill"
)

func weight(v float64) *float64 { return &v }

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(opts...)
	require.NoError(t, err)
	return e
}

func TestCompute_WeightedScore(t *testing.T) {
	e := newEngine(t)
	res, ok := e.Compute(
		[]string{"python", "machine learning"},
		[]KeywordRow{
			{Keyword: "python", Importance: ImportanceCritical},
			{Keyword: "nlp", Importance: ImportancePreferred},
		},
		skill.EmptyVariantMap(),
	)
	require.True(t, ok)
	assert.Equal(t, 66.67, res.Score)
	assert.Equal(t, []string{"python"}, res.Matched)
	assert.Equal(t, []string{"nlp"}, res.Missing)
	assert.Equal(t, 2.0, res.MatchedWeight)
	assert.Equal(t, 3.0, res.TotalWeight)
	assert.Equal(t, 2, res.Total)
	assert.InDelta(t, 2.0/3.0, res.Coverage, 1e-9)
}

func TestCompute_SynonymFoldedMatch(t *testing.T) {
	e := newEngine(t)
	vm := skill.BuildVariantMap([]skill.SynonymRow{
		{Token: "ml", ExpandsTo: "machine learning", Category: "skill"},
	})
	res, ok := e.Compute(
		[]string{"ml"},
		[]KeywordRow{{Keyword: "Machine Learning", Weight: weight(1)}},
		vm,
	)
	require.True(t, ok)
	assert.Equal(t, 100.0, res.Score)
	assert.Equal(t, []string{"Machine Learning"}, res.Matched)
	assert.Empty(t, res.Missing)
	assert.Equal(t, map[string]string{"Machine Learning": "skill"}, res.Categories)
}

func TestCompute_NoSignal(t *testing.T) {
	e := newEngine(t)
	vm := skill.EmptyVariantMap()

	_, ok := e.Compute([]string{"python"}, nil, vm)
	assert.False(t, ok)

	_, ok = e.Compute(nil, []KeywordRow{{Keyword: "python"}}, vm)
	assert.False(t, ok)

	_, ok = e.Compute([]string{"  ", "!!"}, []KeywordRow{{Keyword: "python"}}, vm)
	assert.False(t, ok)

	_, ok = e.Compute([]string{"python"}, []KeywordRow{{Keyword: "  "}, {Keyword: ""}}, vm)
	assert.False(t, ok)
}

func TestResolveWeight(t *testing.T) {
	cases := []struct {
		name string
		row  KeywordRow
		want float64
	}{
		{"explicit", KeywordRow{Importance: ImportanceCritical, Weight: weight(3.5)}, 3.5},
		{"critical default", KeywordRow{Importance: ImportanceCritical}, 2.0},
		{"preferred default", KeywordRow{Importance: ImportancePreferred}, 1.0},
		{"optional default", KeywordRow{Importance: ImportanceOptional}, 0.5},
		{"negative falls back", KeywordRow{Importance: ImportanceOptional, Weight: weight(-1)}, 0.5},
		{"zero falls back", KeywordRow{Importance: ImportanceCritical, Weight: weight(0)}, 2.0},
		{"nan falls back", KeywordRow{Weight: weight(math.NaN())}, 1.0},
		{"unknown importance", KeywordRow{Importance: "must-have"}, 1.0},
		{"mixed case importance", KeywordRow{Importance: " Critical "}, 2.0},
		{"nothing", KeywordRow{}, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveWeight(tc.row))
		})
	}
}

func TestCompute_NegativeWeightUsesImportance(t *testing.T) {
	e := newEngine(t)
	res, ok := e.Compute(
		[]string{"go"},
		[]KeywordRow{
			{Keyword: "go", Importance: ImportanceCritical, Weight: weight(-1)},
			{Keyword: "rust", Importance: ImportanceOptional},
		},
		skill.EmptyVariantMap(),
	)
	require.True(t, ok)
	assert.Equal(t, 2.0, res.MatchedWeight)
	assert.Equal(t, 2.5, res.TotalWeight)
	assert.Equal(t, 80.0, res.Score)
}

func TestCompute_DuplicateKeywordsCountOnce(t *testing.T) {
	e := newEngine(t)
	res, ok := e.Compute(
		[]string{"python"},
		[]KeywordRow{
			{Keyword: "Python", Importance: ImportanceCritical},
			{Keyword: "python ", Importance: ImportanceOptional},
			{Keyword: "docker"},
		},
		skill.EmptyVariantMap(),
	)
	require.True(t, ok)
	assert.Equal(t, []string{"Python"}, res.Matched)
	assert.Equal(t, []string{"docker"}, res.Missing)
	assert.Equal(t, 3.0, res.TotalWeight)
	assert.Equal(t, 2, res.Total)
}

func TestCompute_PunctuationOnlyKeywordIsMissing(t *testing.T) {
	e := newEngine(t)
	res, ok := e.Compute(
		[]string{"python"},
		[]KeywordRow{
			{Keyword: "Python", Importance: ImportanceCritical},
			{Keyword: "python", Importance: ImportanceOptional},
			{Keyword: "???"},
			{Keyword: " ??? "},
			{Keyword: "nlp"},
		},
		skill.EmptyVariantMap(),
	)
	require.True(t, ok)
	assert.Equal(t, []string{"Python"}, res.Matched)
	assert.Equal(t, []string{"???", "nlp"}, res.Missing)
	assert.Equal(t, 4.0, res.TotalWeight)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 50.0, res.Score)
	assert.Empty(t, res.Categories)
}

func TestCompute_FuzzyPresence(t *testing.T) {
	e := newEngine(t)
	res, ok := e.Compute(
		[]string{"kubernetes"},
		[]KeywordRow{{Keyword: "kubernets"}},
		skill.EmptyVariantMap(),
	)
	require.True(t, ok)
	assert.Equal(t, []string{"kubernets"}, res.Matched)

	strict := newEngine(t, WithFuzzyThreshold(1))
	res, ok = strict.Compute(
		[]string{"kubernetes"},
		[]KeywordRow{{Keyword: "kubernets"}},
		skill.EmptyVariantMap(),
	)
	require.True(t, ok)
	assert.Equal(t, []string{"kubernets"}, res.Missing)
}

func TestCompute_ScoreBounds(t *testing.T) {
	e := newEngine(t)
	resumes := [][]string{{"python"}, {"go", "rust"}, {"sql", "python", "docker"}, {"cobol"}}
	keywords := []KeywordRow{
		{Keyword: "python", Importance: ImportanceCritical},
		{Keyword: "docker", Weight: weight(0.25)},
		{Keyword: "rust", Importance: ImportanceOptional},
	}
	for _, r := range resumes {
		res, ok := e.Compute(r, keywords, skill.EmptyVariantMap())
		require.True(t, ok)
		assert.GreaterOrEqual(t, res.Score, 0.0)
		assert.LessOrEqual(t, res.Score, 100.0)
		assert.LessOrEqual(t, res.MatchedWeight, res.TotalWeight)
		assert.Equal(t, res.Total, len(res.Matched)+len(res.Missing))
	}
}

func TestNewEngine_InvalidThresholds(t *testing.T) {
	_, err := NewEngine(WithCanonicalThreshold(1.5))
	assert.ErrorIs(t, err, skill.ErrInvalidThreshold)

	_, err = NewEngine(WithFuzzyThreshold(-0.1))
	assert.ErrorIs(t, err, skill.ErrInvalidThreshold)

	e, err := NewEngine(nil, WithCanonicalThreshold(0.95))
	require.NoError(t, err)
	assert.Equal(t, 0.95, e.CanonicalThreshold())
	assert.Equal(t, DefaultFuzzyThreshold, e.FuzzyThreshold())
}

func TestParseImportance(t *testing.T) {
	assert.Equal(t, ImportanceCritical, ParseImportance("CRITICAL"))
	assert.Equal(t, ImportanceOptional, ParseImportance(" optional"))
	assert.Equal(t, Importance(""), ParseImportance("nice to have"))
	assert.True(t, ImportancePreferred.Valid())
	assert.False(t, Importance("x").Valid())
}
