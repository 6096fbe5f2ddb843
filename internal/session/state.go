// Package session holds the dashboard's per-session skill levels as an explicit value.
package session

import (
	"errors"
	"fmt"
	"time"

	"skill-gap/internal/domain/skill"

	"github.com/google/uuid"
)

var (
	ErrUnknownSkill = errors.New("unknown skill")
	ErrInvalidLevel = errors.New("invalid level")
)

type State struct {
	ID        uuid.UUID     `json:"id"`
	Levels    skill.Profile `json:"levels"`
	Version   int           `json:"version"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type Update struct {
	Skill string
	Level int
}

// New returns a state with every skill at the dashboard minimum level.
func New(id uuid.UUID, skills []string, now time.Time) State {
	levels := make(skill.Profile, len(skills))
	for _, s := range skills {
		levels[s] = skill.DashboardMinUserLevel
	}
	return State{ID: id, Levels: levels, UpdatedAt: now.UTC()}
}

// Apply returns a copy of st with the updates applied. st is never modified. All updates
// are validated before any is applied.
func Apply(st State, now time.Time, updates ...Update) (State, error) {
	for _, u := range updates {
		if _, ok := st.Levels[u.Skill]; !ok {
			return st, fmt.Errorf("%w: %s", ErrUnknownSkill, u.Skill)
		}
		if u.Level < skill.DashboardMinUserLevel || u.Level > skill.MaxLevel {
			return st, fmt.Errorf("%w: %s=%d", ErrInvalidLevel, u.Skill, u.Level)
		}
	}

	next := st
	next.Levels = st.Levels.Clone()
	for _, u := range updates {
		next.Levels[u.Skill] = u.Level
	}
	if len(updates) > 0 {
		next.Version++
		next.UpdatedAt = now.UTC()
	}
	return next, nil
}

// Reconcile aligns st with the current skill list: new skills start at the minimum,
// dropped skills are removed.
func Reconcile(st State, skills []string) State {
	next := st
	next.Levels = make(skill.Profile, len(skills))
	for _, s := range skills {
		if v, ok := st.Levels[s]; ok {
			next.Levels[s] = v
			continue
		}
		next.Levels[s] = skill.DashboardMinUserLevel
	}
	return next
}
