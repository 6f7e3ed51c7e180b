package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchSkillsPartialCoverage(t *testing.T) {
	res := MatchSkills([]string{"python", "sql"}, []string{"tableau"},
		"experienced python developer, enjoys data work")

	assert.InDelta(t, 0.5, res.Score, 1e-9)
	assert.Equal(t, []string{"python"}, res.MatchedRequired)
	assert.Equal(t, []string{"sql"}, res.MissingRequired)
	assert.Empty(t, res.MatchedPreferred)
	assert.Equal(t, []string{"tableau"}, res.MissingPreferred)
}

func TestMatchSkillsCaseInsensitive(t *testing.T) {
	res := MatchSkills([]string{"Python", "SQL"}, nil, "built PYTHON services backed by PostgreSQL")
	// "sql" входит подстрокой в "postgresql" — контракт подстрочный
	assert.InDelta(t, 1.0, res.Score, 1e-9)
	assert.Equal(t, []string{"Python", "SQL"}, res.MatchedRequired)
}

func TestMatchSkillsEmptyLists(t *testing.T) {
	res := MatchSkills(nil, nil, "any resume text")
	assert.Zero(t, res.Score)
	assert.NotNil(t, res.MatchedRequired)
	assert.NotNil(t, res.MissingRequired)
	assert.NotNil(t, res.MatchedPreferred)
	assert.NotNil(t, res.MissingPreferred)
}

func TestMatchSkillsPreferredSubstitution(t *testing.T) {
	// required пуст — покрытие считается по preferred
	res := MatchSkills(nil, []string{"docker", "kubernetes"}, "ran docker containers in production")
	assert.InDelta(t, 0.5, res.Score, 1e-9)
	assert.Equal(t, []string{"docker"}, res.MatchedPreferred)
	assert.Equal(t, []string{"kubernetes"}, res.MissingPreferred)
}

func TestMatchSkillsEmptyResume(t *testing.T) {
	res := MatchSkills([]string{"go"}, []string{"grpc"}, "")
	assert.Zero(t, res.Score)
	assert.Equal(t, []string{"go"}, res.MissingRequired)
	assert.Equal(t, []string{"grpc"}, res.MissingPreferred)
}

func TestMatchSkillsClassifiesEverySkillOnce(t *testing.T) {
	required := []string{"python", "sql", "airflow"}
	preferred := []string{"dbt", "spark"}
	res := MatchSkills(required, preferred, "python and spark pipelines")

	assert.Len(t, res.MatchedRequired, len(required)-len(res.MissingRequired))
	assert.ElementsMatch(t, required, append(append([]string{}, res.MatchedRequired...), res.MissingRequired...))
	assert.ElementsMatch(t, preferred, append(append([]string{}, res.MatchedPreferred...), res.MissingPreferred...))
}

func TestMatchSkillsSkipsBlankEntries(t *testing.T) {
	res := MatchSkills([]string{"", "go"}, []string{""}, "go developer")
	assert.InDelta(t, 1.0, res.Score, 1e-9)
	assert.Equal(t, []string{"go"}, res.MatchedRequired)
	assert.Empty(t, res.MissingPreferred)
}
