// Package style holds the lipgloss styles used for terminal output.
package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	PathStyle = lipgloss.NewStyle().
			Foreground(PathColor).
			Italic(true)
)

// Diff styles
var (
	DiffHeaderStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	DiffHunkStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	DiffAddedStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	DiffRemovedStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)
)

// DiffLine styles one line of a unified diff by its prefix.
func DiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return DiffHeaderStyle.Render(line)
	case strings.HasPrefix(line, "@@"):
		return DiffHunkStyle.Render(line)
	case strings.HasPrefix(line, "+"):
		return DiffAddedStyle.Render(line)
	case strings.HasPrefix(line, "-"):
		return DiffRemovedStyle.Render(line)
	default:
		return line
	}
}
