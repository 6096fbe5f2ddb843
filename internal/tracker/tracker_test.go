package tracker

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"skill-gap/internal/dataset"
	"skill-gap/internal/domain/skill"
	"skill-gap/internal/input"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenario() *dataset.Dataset {
	return dataset.New([]skill.Requirement{
		{Job: "Data Analyst #1", Skill: "Python", RequiredLevel: 8},
		{Job: "Data Analyst #1", Skill: "SQL", RequiredLevel: 7},
		{Job: "Cloud Engineer #2", Skill: "Docker", RequiredLevel: 6},
	})
}

func TestRun_Scenario(t *testing.T) {
	dir := t.TempDir()
	// Python, SQL, Docker, then job 1
	in := strings.NewReader("5\n7\n3\n1\n")
	var out bytes.Buffer

	res, err := Run(in, &out, scenario(), Options{MaxAttempts: 5, OutputDir: dir})
	require.NoError(t, err)

	assert.Equal(t, "Data Analyst #1", res.Job)
	require.Len(t, res.Records, 2)
	assert.Equal(t, 3, res.Records[0].GapPositive)
	assert.Equal(t, 0, res.Records[1].GapPositive)
	assert.Equal(t, "80.00%", res.CompletionText)

	text := out.String()
	assert.Contains(t, text, "Choose a job from the list below:")
	assert.Contains(t, text, "1. Data Analyst #1")
	assert.Contains(t, text, "2. Cloud Engineer #2")
	assert.Contains(t, text, "Overall Skill Completion: 80.00%")

	b, err := os.ReadFile(res.ReportPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Skill Gap Radar for Data Analyst #1")
}

func TestRun_RetriesThenSucceeds(t *testing.T) {
	in := strings.NewReader("abc\n0\n5\n7\n3\n9\n2\n")
	var out bytes.Buffer

	res, err := Run(in, &out, scenario(), Options{MaxAttempts: 5})
	require.NoError(t, err)
	assert.Equal(t, "Cloud Engineer #2", res.Job)
	assert.Empty(t, res.ReportPath)
	assert.Contains(t, out.String(), "Invalid input. Enter a number between 1 and 10")
	assert.Contains(t, out.String(), "Enter a number between 1 and 10")
	assert.Contains(t, out.String(), "Invalid choice.")
}

func TestRun_InputClosed(t *testing.T) {
	_, err := Run(strings.NewReader("5\n"), &bytes.Buffer{}, scenario(), Options{})
	assert.True(t, errors.Is(err, input.ErrInputClosed))
}

func TestRun_EmptyDataset(t *testing.T) {
	_, err := Run(strings.NewReader(""), &bytes.Buffer{}, dataset.New(nil), Options{})
	assert.Error(t, err)
}

func TestReportFileName(t *testing.T) {
	assert.Equal(t, "skill-gap-data-analyst-12.html", ReportFileName("Data Analyst #12"))
	assert.Equal(t, "skill-gap-report.html", ReportFileName("###"))
	assert.Equal(t, "skill-gap-data-scientist-demo.html", ReportFileName("Data Scientist (demo)"))
}

type failingCloser struct {
	bytes.Buffer
	closed bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return errors.New("disk full")
}

func TestRenderReport_CloseErrorIsReturned(t *testing.T) {
	wc := &failingCloser{}
	err := renderReport(wc, "Data Analyst #1", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close report")
	assert.True(t, wc.closed)
	assert.Contains(t, wc.String(), "<html")
}
