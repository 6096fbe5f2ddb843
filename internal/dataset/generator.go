package dataset

import (
	"errors"
	"fmt"
	"math/rand"

	"skill-gap/internal/domain/skill"
)

var ErrInvalidOptions = errors.New("invalid generator options")

type Options struct {
	Jobs      int
	MinSkills int
	MaxSkills int
	MinLevel  int
	MaxLevel  int

	Roles []string
	Pool  []string
}

func DefaultOptions() Options {
	return Options{
		Jobs:      1000,
		MinSkills: 5,
		MaxSkills: 10,
		MinLevel:  skill.GeneratedMinRequiredLevel,
		MaxLevel:  skill.MaxLevel,
		Roles:     skill.Roles,
		Pool:      skill.Pool,
	}
}

func (o Options) validate() error {
	switch {
	case o.Jobs < 0:
		return fmt.Errorf("%w: negative job count", ErrInvalidOptions)
	case len(o.Roles) == 0:
		return fmt.Errorf("%w: empty role pool", ErrInvalidOptions)
	case o.MinSkills < 1 || o.MinSkills > o.MaxSkills:
		return fmt.Errorf("%w: skills per job %d-%d", ErrInvalidOptions, o.MinSkills, o.MaxSkills)
	case o.MaxSkills > len(o.Pool):
		return fmt.Errorf("%w: pool of %d cannot supply %d skills", ErrInvalidOptions, len(o.Pool), o.MaxSkills)
	case o.MinLevel < 0 || o.MinLevel > o.MaxLevel || o.MaxLevel > skill.MaxLevel:
		return fmt.Errorf("%w: level range %d-%d", ErrInvalidOptions, o.MinLevel, o.MaxLevel)
	}
	return nil
}

// Generate synthesizes opts.Jobs postings. Each posting gets a random role suffixed with
// its 1-based sequence number and a distinct subset of the skill pool.
func Generate(rng *rand.Rand, opts Options) (*Dataset, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidOptions)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	pickInt := func(min, max int) int { return min + rng.Intn(max-min+1) }

	rows := make([]skill.Requirement, 0, opts.Jobs*opts.MaxSkills)
	for i := 0; i < opts.Jobs; i++ {
		job := fmt.Sprintf("%s #%d", opts.Roles[rng.Intn(len(opts.Roles))], i+1)
		n := pickInt(opts.MinSkills, opts.MaxSkills)
		for _, idx := range rng.Perm(len(opts.Pool))[:n] {
			rows = append(rows, skill.Requirement{
				Job:           job,
				Skill:         opts.Pool[idx],
				RequiredLevel: pickInt(opts.MinLevel, opts.MaxLevel),
			})
		}
	}
	return New(rows), nil
}
