// Package tracker runs the console flow: collect levels, pick a job, report the gap.
package tracker

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"skill-gap/internal/chart"
	"skill-gap/internal/dataset"
	"skill-gap/internal/domain/gap"
	"skill-gap/internal/domain/skill"
	"skill-gap/internal/input"
	"skill-gap/internal/pkg/styles"
)

type Options struct {
	MaxAttempts int
	// OutputDir receives the HTML report. Empty skips writing it.
	OutputDir string
}

type Result struct {
	Job            string
	Records        []gap.Record
	CompletionText string
	ReportPath     string
}

// Run drives one console session over ds, reading answers from in and writing prompts to out.
func Run(in io.Reader, out io.Writer, ds *dataset.Dataset, opts Options) (Result, error) {
	if ds == nil || ds.Len() == 0 {
		return Result{}, fmt.Errorf("empty dataset")
	}

	p := input.NewPrompter(in, out, opts.MaxAttempts)

	profile, err := p.CollectProfile(ds.Skills(), skill.ConsoleMinUserLevel, skill.MaxLevel)
	if err != nil {
		return Result{}, err
	}

	//nolint:errcheck // console output
	fmt.Fprintln(out)
	job, err := p.SelectJob(ds.Jobs())
	if err != nil {
		return Result{}, err
	}

	records, err := gap.Calculate(ds.Requirements(job), profile)
	if err != nil {
		return Result{}, fmt.Errorf("calculate gap: %w", err)
	}
	pct, cerr := gap.Completion(records)
	res := Result{Job: job, Records: records, CompletionText: gap.FormatCompletion(pct, cerr)}

	PrintReport(out, job, records, res.CompletionText)

	if opts.OutputDir != "" {
		path, err := WriteReport(opts.OutputDir, job, records)
		if err != nil {
			return res, err
		}
		res.ReportPath = path
		styles.Fprintln(out, styles.Success, "Charts written to %s", path)
	}
	return res, nil
}

// PrintReport writes the styled gap table followed by the summary lines.
func PrintReport(out io.Writer, job string, records []gap.Record, completion string) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Skill,
			strconv.Itoa(r.RequiredLevel),
			strconv.Itoa(r.UserLevel),
			strconv.Itoa(r.Gap),
			strconv.Itoa(r.GapPositive),
		})
	}

	styles.Fprintln(out, styles.Heading, "\nSkill gap for %s", job)
	//nolint:errcheck // console output
	fmt.Fprintln(out, styles.Table([]string{"Skill", "Required", "Yours", "Gap", "Gap_Positive"}, rows))

	s := gap.Summarize(records)
	styles.Fprintln(out, styles.Info, "Overall Skill Completion: %s", completion)
	if s.Largest != nil {
		styles.Fprintln(out, styles.Info, "Unmet skills: %d, largest gap: %s (%d)", s.UnmetSkills, s.Largest.Skill, s.Largest.GapPositive)
	} else {
		styles.Fprintln(out, styles.Success, "You meet every requirement for this job.")
	}
}

// WriteReport renders the radar, gap bar and bubble charts into one HTML file.
func WriteReport(dir, job string, records []gap.Record) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, ReportFileName(job))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := renderReport(f, job, records); err != nil {
		return "", err
	}
	return path, nil
}

// renderReport writes the report to wc and closes it. A failed close is a failed write.
func renderReport(wc io.WriteCloser, job string, records []gap.Record) error {
	if err := chart.Report(wc, job, records); err != nil {
		_ = wc.Close()
		return fmt.Errorf("render report: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	return nil
}

// ReportFileName turns "Data Analyst #12" into "skill-gap-data-analyst-12.html".
func ReportFileName(job string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(job) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		name = "report"
	}
	return "skill-gap-" + name + ".html"
}
