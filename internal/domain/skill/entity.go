package skill

import "sort"

// Level bounds for the two input variants.
const (
	MaxLevel = 10

	ConsoleMinUserLevel   = 1
	DashboardMinUserLevel = 0

	GeneratedMinRequiredLevel = 5
)

type Requirement struct {
	Job           string `json:"job"`
	Skill         string `json:"skill"`
	RequiredLevel int    `json:"required_level"`
}

// Profile maps a skill name to the user's self-reported level.
type Profile map[string]int

func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func (p Profile) Names() []string {
	out := make([]string, 0, len(p))
	for k := range p {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

var Roles = []string{
	"Data Analyst", "Machine Learning Engineer", "Data Scientist",
	"Business Analyst", "AI Researcher", "Cloud Engineer",
	"Full Stack Developer", "Product Manager", "DevOps Engineer",
	"Data Engineer", "Cybersecurity Analyst", "Quantitative Analyst",
}

var Pool = []string{
	"Python", "SQL", "Excel", "Tableau", "PowerBI", "Machine Learning",
	"Deep Learning", "Communication", "Project Management", "Leadership",
	"Data Cleaning", "Statistics", "Cloud Computing", "APIs", "Docker",
}

// DemoJob is the job label used by the dashboard's fixed requirement list.
const DemoJob = "Data Scientist (demo)"

// DemoRequirements returns the fixed requirement list shown on the dashboard.
func DemoRequirements() []Requirement {
	return []Requirement{
		{Job: DemoJob, Skill: "Python", RequiredLevel: 8},
		{Job: DemoJob, Skill: "SQL", RequiredLevel: 7},
		{Job: DemoJob, Skill: "Machine Learning", RequiredLevel: 7},
		{Job: DemoJob, Skill: "Statistics", RequiredLevel: 6},
		{Job: DemoJob, Skill: "Data Cleaning", RequiredLevel: 6},
		{Job: DemoJob, Skill: "Communication", RequiredLevel: 5},
	}
}
