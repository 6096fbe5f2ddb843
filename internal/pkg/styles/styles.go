package styles

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F45E6E"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6EF4A1"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6EC4F4"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

const (
	Heading = "heading"
	Hint    = "hint"
	Success = "success"
	Info    = "info"
	Muted   = "muted"
)

func Sprintf(style string, format string, a ...any) string {
	text := fmt.Sprintf(format, a...)
	switch style {
	case Heading:
		return headingStyle.Render(text)
	case Hint:
		return hintStyle.Render(text)
	case Success:
		return successStyle.Render(text)
	case Info:
		return infoStyle.Render(text)
	case Muted:
		return mutedStyle.Render(text)
	default:
		return text
	}
}

//nolint:errcheck // console output
func Fprintln(w io.Writer, style string, format string, a ...any) {
	fmt.Fprintln(w, Sprintf(style, format, a...))
}

// Table renders rows under a bold header with a rounded border.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headingStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}
