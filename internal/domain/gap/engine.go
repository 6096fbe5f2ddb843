package gap

import (
	"errors"
	"fmt"
	"strings"

	"skill-gap/internal/domain/skill"
)

var (
	ErrUnmappedSkill   = errors.New("skill missing from profile")
	ErrZeroRequirement = errors.New("sum of required levels is zero")
)

type Record struct {
	Skill         string `json:"skill"`
	RequiredLevel int    `json:"required_level"`
	UserLevel     int    `json:"user_level"`
	Gap           int    `json:"gap"`
	GapPositive   int    `json:"gap_positive"`
}

// UnmappedSkillError lists requirement skills that have no entry in the profile.
type UnmappedSkillError struct {
	Skills []string
}

func (e *UnmappedSkillError) Error() string {
	if e == nil {
		return ""
	}
	return ErrUnmappedSkill.Error() + ": " + strings.Join(e.Skills, ", ")
}

func (e *UnmappedSkillError) Unwrap() error {
	return ErrUnmappedSkill
}

type Summary struct {
	TotalRequired int
	TotalUser     int
	TotalGap      int
	UnmetSkills   int
	Largest       *Record
}

// Calculate joins a job's requirements against the profile, one record per requirement
// in input order.
func Calculate(reqs []skill.Requirement, profile skill.Profile) ([]Record, error) {
	out := make([]Record, 0, len(reqs))
	var missing []string
	for _, r := range reqs {
		lvl, ok := profile[r.Skill]
		if !ok {
			missing = append(missing, r.Skill)
			continue
		}
		g := r.RequiredLevel - lvl
		out = append(out, Record{
			Skill:         r.Skill,
			RequiredLevel: r.RequiredLevel,
			UserLevel:     lvl,
			Gap:           g,
			GapPositive:   clampNonNegative(g),
		})
	}
	if len(missing) > 0 {
		return nil, &UnmappedSkillError{Skills: missing}
	}
	return out, nil
}

// Completion returns sum(user)/sum(required) as a percentage. It is not capped at 100.
func Completion(records []Record) (float64, error) {
	var userSum, reqSum int
	for _, r := range records {
		userSum += r.UserLevel
		reqSum += r.RequiredLevel
	}
	if reqSum == 0 {
		return 0, ErrZeroRequirement
	}
	return float64(userSum) / float64(reqSum) * 100, nil
}

func Summarize(records []Record) Summary {
	var s Summary
	for i := range records {
		r := records[i]
		s.TotalRequired += r.RequiredLevel
		s.TotalUser += r.UserLevel
		s.TotalGap += r.GapPositive
		if r.GapPositive > 0 {
			s.UnmetSkills++
		}
		if r.GapPositive > 0 && (s.Largest == nil || r.GapPositive > s.Largest.GapPositive) {
			s.Largest = &records[i]
		}
	}
	return s
}

// FormatCompletion renders the dashboard readout value with two decimals.
func FormatCompletion(pct float64, err error) string {
	if err != nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", pct)
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
