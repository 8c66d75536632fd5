package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skill-match/internal/domain/skill"
)

func find(cs []Candidate, name string) (Candidate, bool) {
	for _, c := range cs {
		if c.Skill == name {
			return c, true
		}
	}
	return Candidate{}, false
}

func TestDiscover_RanksByDocsAndJD(t *testing.T) {
	corpus := []string{
		"Built pipelines with Airflow and dbt on Snowflake.",
		"Used dbt and Airflow daily.",
	}
	known := skill.TokenSet{}
	known.Add("built")

	got := Discover(corpus, known, "Experience with dbt required", 0)

	names := make([]string, 0, len(got))
	for _, c := range got {
		names = append(names, c.Skill)
	}
	assert.Equal(t, []string{"dbt", "daily", "built pipelines", "airflow daily"}, names)

	dbt := got[0]
	assert.Equal(t, 2, dbt.Docs)
	assert.True(t, dbt.InJD)
	assert.Equal(t, 35, dbt.Score)
	assert.Contains(t, dbt.Example, "dbt on snowflake")
}

func TestDiscover_DigitsAndSymbols(t *testing.T) {
	got := Discover([]string{"Deployed on K8s with C++ and .NET, Python 3.11 scripts"}, nil, "", 0)

	k8s, ok := find(got, "k8s")
	require.True(t, ok)
	assert.Equal(t, 15, k8s.Score)

	cpp, ok := find(got, "c++")
	require.True(t, ok)
	assert.Equal(t, 15, cpp.Score)

	_, ok = find(got, ".net")
	assert.True(t, ok)

	_, ok = find(got, ".net python")
	assert.True(t, ok)

	v, ok := find(got, "3.11")
	require.True(t, ok)
	assert.Equal(t, 20, v.Score)

	_, ok = find(got, "with")
	assert.False(t, ok)
}

func TestDiscover_ShortAndNumericTokens(t *testing.T) {
	got := Discover([]string{"Skills: C, R, SQL, ES6, 2019 Excel 365"}, nil, "", 0)

	for _, name := range []string{"c", "r", "sql", "es6", "2019", "365"} {
		_, ok := find(got, name)
		assert.True(t, ok, name)
	}

	c, _ := find(got, "c")
	assert.Equal(t, 10, c.Score)
	n, _ := find(got, "365")
	assert.Equal(t, 15, n.Score)

	got = Discover([]string{"kafka + redis"}, nil, "", 0)
	_, ok := find(got, "+")
	assert.False(t, ok)
	_, ok = find(got, "kafka + redis")
	assert.False(t, ok)
}

func TestDiscover_NgramsDoNotSpanStopwords(t *testing.T) {
	got := Discover([]string{"kafka and redis"}, nil, "", 0)
	_, ok := find(got, "kafka and redis")
	assert.False(t, ok)
	_, ok = find(got, "kafka and")
	assert.False(t, ok)
	_, ok = find(got, "kafka")
	assert.True(t, ok)
}

func TestDiscover_CapAndEmpty(t *testing.T) {
	assert.Nil(t, Discover(nil, nil, "", 10))
	assert.Nil(t, Discover([]string{"", "  ?? "}, nil, "", 10))

	got := Discover([]string{"go rust kafka redis spark flink"}, nil, "", 3)
	assert.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}
