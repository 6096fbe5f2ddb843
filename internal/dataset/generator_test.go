package dataset

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"skill-gap/internal/domain/skill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Properties(t *testing.T) {
	d, err := Generate(rand.New(rand.NewSource(42)), DefaultOptions())
	require.NoError(t, err)

	jobs := d.Jobs()
	require.Len(t, jobs, 1000)

	pool := map[string]struct{}{}
	for _, s := range skill.Pool {
		pool[s] = struct{}{}
	}

	for i, job := range jobs {
		assert.True(t, strings.HasSuffix(job, " #"+strconv.Itoa(i+1)), job)

		reqs := d.Requirements(job)
		assert.GreaterOrEqual(t, len(reqs), 5, job)
		assert.LessOrEqual(t, len(reqs), 10, job)

		seen := map[string]struct{}{}
		for _, r := range reqs {
			assert.GreaterOrEqual(t, r.RequiredLevel, 5)
			assert.LessOrEqual(t, r.RequiredLevel, 10)
			_, inPool := pool[r.Skill]
			assert.True(t, inPool, r.Skill)
			_, dup := seen[r.Skill]
			assert.False(t, dup, "duplicate %s in %s", r.Skill, job)
			seen[r.Skill] = struct{}{}
		}
	}
}

func TestGenerate_SameSeedSameDataset(t *testing.T) {
	a, err := Generate(rand.New(rand.NewSource(7)), DefaultOptions())
	require.NoError(t, err)
	b, err := Generate(rand.New(rand.NewSource(7)), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, a.Rows(), b.Rows())
}

func TestGenerate_InvalidOptions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	opts := DefaultOptions()
	opts.MaxSkills = len(opts.Pool) + 1
	_, err := Generate(rng, opts)
	assert.ErrorIs(t, err, ErrInvalidOptions)

	opts = DefaultOptions()
	opts.MinLevel, opts.MaxLevel = 8, 6
	_, err = Generate(rng, opts)
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = Generate(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestDataset_Ordering(t *testing.T) {
	d := New([]skill.Requirement{
		{Job: "B #1", Skill: "SQL", RequiredLevel: 6},
		{Job: "B #1", Skill: "Python", RequiredLevel: 7},
		{Job: "A #2", Skill: "Python", RequiredLevel: 9},
		{Job: "A #2", Skill: "Docker", RequiredLevel: 5},
	})

	assert.Equal(t, []string{"B #1", "A #2"}, d.Jobs())
	assert.Equal(t, []string{"SQL", "Python", "Docker"}, d.Skills())
	assert.Len(t, d.Requirements("A #2"), 2)
	assert.Empty(t, d.Requirements("missing"))

	st := d.Stats()
	assert.Equal(t, 2, st.Jobs)
	assert.Equal(t, 4, st.Rows)
	assert.Equal(t, 2, st.SkillDemand["Python"])
	assert.InDelta(t, 6.75, st.AvgRequired, 1e-9)
}
