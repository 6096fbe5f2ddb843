package gap

import (
	"errors"
	"testing"

	"skill-gap/internal/domain/skill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reqs(job string, pairs ...any) []skill.Requirement {
	out := make([]skill.Requirement, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, skill.Requirement{Job: job, Skill: pairs[i].(string), RequiredLevel: pairs[i+1].(int)})
	}
	return out
}

func TestCalculate_PythonSQLScenario(t *testing.T) {
	records, err := Calculate(
		reqs("Data Analyst #1", "Python", 8, "SQL", 7),
		skill.Profile{"Python": 5, "SQL": 7},
	)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Record{Skill: "Python", RequiredLevel: 8, UserLevel: 5, Gap: 3, GapPositive: 3}, records[0])
	assert.Equal(t, Record{Skill: "SQL", RequiredLevel: 7, UserLevel: 7, Gap: 0, GapPositive: 0}, records[1])

	pct, err := Completion(records)
	require.NoError(t, err)
	assert.Equal(t, "80.00%", FormatCompletion(pct, err))
}

func TestCalculate_AllAtRequiredLevel(t *testing.T) {
	records, err := Calculate(
		reqs("Cloud Engineer #4", "Docker", 9, "APIs", 6, "Leadership", 5),
		skill.Profile{"Docker": 9, "APIs": 6, "Leadership": 5, "Excel": 2},
	)
	require.NoError(t, err)

	for _, r := range records {
		assert.Zero(t, r.Gap, r.Skill)
		assert.Zero(t, r.GapPositive, r.Skill)
	}

	pct, err := Completion(records)
	require.NoError(t, err)
	assert.Equal(t, "100.00%", FormatCompletion(pct, err))
}

func TestCalculate_SurplusIsClamped(t *testing.T) {
	records, err := Calculate(reqs("j", "SQL", 5), skill.Profile{"SQL": 9})
	require.NoError(t, err)
	assert.Equal(t, -4, records[0].Gap)
	assert.Equal(t, 0, records[0].GapPositive)
}

func TestCalculate_Boundaries(t *testing.T) {
	tests := []struct {
		name     string
		user     int
		required int
		want     int
	}{
		{name: "dashboard minimum", user: skill.DashboardMinUserLevel, required: skill.MaxLevel, want: 10},
		{name: "console minimum", user: skill.ConsoleMinUserLevel, required: skill.MaxLevel, want: 9},
		{name: "equal", user: 7, required: 7, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Calculate(reqs("j", "Python", tt.required), skill.Profile{"Python": tt.user})
			require.NoError(t, err)
			assert.Equal(t, tt.want, records[0].GapPositive)
		})
	}
}

func TestCalculate_GapPositiveNeverNegative(t *testing.T) {
	for req := 0; req <= skill.MaxLevel; req++ {
		for usr := 0; usr <= skill.MaxLevel; usr++ {
			records, err := Calculate(reqs("j", "Excel", req), skill.Profile{"Excel": usr})
			require.NoError(t, err)
			r := records[0]
			assert.GreaterOrEqual(t, r.GapPositive, 0)
			assert.Equal(t, max(req-usr, 0), r.GapPositive)
		}
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	in := reqs("j", "Python", 8, "SQL", 7, "Docker", 10)
	profile := skill.Profile{"Python": 3, "SQL": 9, "Docker": 10}

	first, err := Calculate(in, profile)
	require.NoError(t, err)
	second, err := Calculate(in, profile)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCalculate_UnmappedSkill(t *testing.T) {
	_, err := Calculate(reqs("j", "Python", 8, "Tableau", 6, "SQL", 5), skill.Profile{"Python": 5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnmappedSkill))

	var ue *UnmappedSkillError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, []string{"Tableau", "SQL"}, ue.Skills)
}

func TestCompletion_ZeroDenominator(t *testing.T) {
	records, err := Calculate(reqs("j", "Python", 0, "SQL", 0), skill.Profile{"Python": 4, "SQL": 0})
	require.NoError(t, err)

	_, err = Completion(records)
	assert.ErrorIs(t, err, ErrZeroRequirement)
	assert.Equal(t, "n/a", FormatCompletion(0, err))

	_, err = Completion(nil)
	assert.ErrorIs(t, err, ErrZeroRequirement)
}

func TestSummarize(t *testing.T) {
	records, err := Calculate(
		reqs("j", "Python", 8, "SQL", 7, "Docker", 10),
		skill.Profile{"Python": 5, "SQL": 9, "Docker": 4},
	)
	require.NoError(t, err)

	s := Summarize(records)
	assert.Equal(t, 25, s.TotalRequired)
	assert.Equal(t, 18, s.TotalUser)
	assert.Equal(t, 9, s.TotalGap)
	assert.Equal(t, 2, s.UnmetSkills)
	require.NotNil(t, s.Largest)
	assert.Equal(t, "Docker", s.Largest.Skill)
}
