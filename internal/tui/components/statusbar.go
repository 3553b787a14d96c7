package components

import (
	"strings"

	"github.com/theirongolddev/budgie/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// the active user and the last status message on the right.
func RenderStatusBar(width int, hints, user, status string, isErr bool) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	userStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	statusStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	if isErr {
		statusStyle = statusStyle.Foreground(t.Red)
	}

	left := base.Render(" " + hints)

	var right string
	if status != "" {
		right += statusStyle.Render(status) + base.Render("  ")
	}
	if user != "" {
		right += userStyle.Render(user) + base.Render(" ")
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + base.Render(strings.Repeat(" ", padding)) + right
}
