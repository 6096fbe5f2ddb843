package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"skill-gap/internal/domain/skill"
	"skill-gap/internal/pkg/styles"
)

// MaxListedJobs caps how many jobs SelectJob offers.
const MaxListedJobs = 50

// Prompter reads line-based answers. MaxAttempts bounds retries per question; zero means
// retry until input ends.
type Prompter struct {
	in          *bufio.Reader
	out         io.Writer
	MaxAttempts int
}

func NewPrompter(in io.Reader, out io.Writer, maxAttempts int) *Prompter {
	if maxAttempts < 0 {
		maxAttempts = 0
	}
	return &Prompter{in: bufio.NewReader(in), out: out, MaxAttempts: maxAttempts}
}

func (p *Prompter) ReadLevel(label string, min, max int) (int, error) {
	return p.ask(label+": ", func(raw string) (int, error) {
		return ParseLevel(raw, min, max)
	}, func(err error) string {
		if errors.Is(err, ErrOutOfRange) {
			return fmt.Sprintf("Enter a number between %d and %d", min, max)
		}
		return fmt.Sprintf("Invalid input. Enter a number between %d and %d", min, max)
	})
}

// CollectProfile asks for one level per skill in the given order.
func (p *Prompter) CollectProfile(skills []string, min, max int) (skill.Profile, error) {
	styles.Fprintln(p.out, styles.Heading, "Enter your skill levels (%d-%d) for the following skills:", min, max)
	profile := make(skill.Profile, len(skills))
	for _, s := range skills {
		lvl, err := p.ReadLevel(s, min, max)
		if err != nil {
			return nil, fmt.Errorf("level for %s: %w", s, err)
		}
		profile[s] = lvl
	}
	return profile, nil
}

// SelectJob lists up to MaxListedJobs jobs and returns the one picked by 1-based index.
func (p *Prompter) SelectJob(jobs []string) (string, error) {
	listed := jobs
	if len(listed) > MaxListedJobs {
		listed = listed[:MaxListedJobs]
	}
	if len(listed) == 0 {
		return "", errors.New("no jobs to choose from")
	}

	p.printf("\n")
	styles.Fprintln(p.out, styles.Heading, "Choose a job from the list below:")
	for i, job := range listed {
		p.printf("%d. %s\n", i+1, job)
	}

	choice, err := p.ask("Enter the number of the job you want to see: ", func(raw string) (int, error) {
		return ParseLevel(raw, 1, len(listed))
	}, func(err error) string {
		if errors.Is(err, ErrOutOfRange) {
			return "Invalid choice."
		}
		return "Enter a valid number."
	})
	if err != nil {
		return "", fmt.Errorf("job selection: %w", err)
	}
	return listed[choice-1], nil
}

func (p *Prompter) ask(prompt string, parse func(string) (int, error), hint func(error) string) (int, error) {
	for attempt := 1; ; attempt++ {
		p.printf("%s", prompt)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		styles.Fprintln(p.out, styles.Hint, "%s", hint(err))
		if p.MaxAttempts > 0 && attempt >= p.MaxAttempts {
			return 0, fmt.Errorf("%w: %v", ErrTooManyAttempts, err)
		}
	}
}

// readLine returns the next line without its terminator. Lines have no length limit; a
// final line without a newline is still returned.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	case errors.Is(err, io.EOF):
		return "", ErrInputClosed
	default:
		return "", fmt.Errorf("%w: %v", ErrInputClosed, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

//nolint:errcheck // console output
func (p *Prompter) printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}
