package dataset

import "skill-gap/internal/domain/skill"

// Dataset is a flat, immutable table of requirement rows with first-seen ordering
// of jobs and skills.
type Dataset struct {
	rows   []skill.Requirement
	jobs   []string
	skills []string
	byJob  map[string][]skill.Requirement
}

func New(rows []skill.Requirement) *Dataset {
	d := &Dataset{
		rows:  append([]skill.Requirement(nil), rows...),
		byJob: map[string][]skill.Requirement{},
	}
	seenSkill := map[string]struct{}{}
	for _, r := range d.rows {
		if _, ok := d.byJob[r.Job]; !ok {
			d.jobs = append(d.jobs, r.Job)
		}
		d.byJob[r.Job] = append(d.byJob[r.Job], r)
		if _, ok := seenSkill[r.Skill]; !ok {
			seenSkill[r.Skill] = struct{}{}
			d.skills = append(d.skills, r.Skill)
		}
	}
	return d
}

func (d *Dataset) Rows() []skill.Requirement {
	if d == nil {
		return nil
	}
	return append([]skill.Requirement(nil), d.rows...)
}

func (d *Dataset) Jobs() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.jobs...)
}

func (d *Dataset) Skills() []string {
	if d == nil {
		return nil
	}
	return append([]string(nil), d.skills...)
}

func (d *Dataset) Requirements(job string) []skill.Requirement {
	if d == nil {
		return nil
	}
	return append([]skill.Requirement(nil), d.byJob[job]...)
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.rows)
}

type Stats struct {
	Jobs        int
	Rows        int
	Skills      int
	AvgPerJob   float64
	AvgRequired float64
	SkillDemand map[string]int
}

func (d *Dataset) Stats() Stats {
	s := Stats{SkillDemand: map[string]int{}}
	if d == nil {
		return s
	}
	s.Jobs = len(d.jobs)
	s.Rows = len(d.rows)
	s.Skills = len(d.skills)
	total := 0
	for _, r := range d.rows {
		total += r.RequiredLevel
		s.SkillDemand[r.Skill]++
	}
	if s.Jobs > 0 {
		s.AvgPerJob = float64(s.Rows) / float64(s.Jobs)
	}
	if s.Rows > 0 {
		s.AvgRequired = float64(total) / float64(s.Rows)
	}
	return s
}
