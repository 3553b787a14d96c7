package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/budgie/internal/cli"
	"github.com/theirongolddev/budgie/internal/tui/components"
	"github.com/theirongolddev/budgie/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.snap.summary
	var b strings.Builder

	// Row 1: headline figures
	disposableColor := t.Green
	if s.Disposable.IsNegative() {
		disposableColor = t.Red
	}
	metrics := []components.Metric{
		{Label: "Income", Value: cli.FormatMoney(s.User.Income), Note: s.User.Name},
		{Label: "Savings", Value: cli.FormatMoney(s.Savings), Note: cli.FormatPct(s.User.SavingsPct) + " of income", Color: t.Blue},
		{Label: "Committed", Value: cli.FormatMoney(s.Committed), Note: "savings + expenses"},
		{Label: "Disposable", Value: cli.FormatMoney(s.Disposable), Note: "left this month", Color: disposableColor},
	}
	if a.isCompactLayout() {
		b.WriteString(components.MetricCardRow(metrics[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(metrics[2:], cw))
	} else {
		b.WriteString(components.MetricCardRow(metrics, cw))
	}
	b.WriteString("\n")

	// Row 2: how much of income is spoken for
	innerW := components.CardInnerWidth(cw)
	labelW := 10
	barW := max(innerW-labelW-6, 10)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)

	usage := components.UsageBar("Committed", s.UsageRatio, labelW, barW) + "\n"
	if s.OverCommitted {
		over := s.Committed.Sub(s.User.Income)
		usage += warnStyle.Render(fmt.Sprintf("Warning: commitments exceed income by %s", cli.FormatMoney(over)))
	} else {
		usage += mutedStyle.Render(fmt.Sprintf("%s of %s income committed", cli.FormatMoney(s.Committed), cli.FormatMoney(s.User.Income)))
	}
	b.WriteString(components.ContentCard("Budget Usage", usage, cw))
	b.WriteString("\n")

	// Row 3: expense totals side by side
	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Fixed Expenses",
			expenseTotalBody(cli.FormatMoney(s.TotalFixed), len(a.snap.fixed)), halves[0]),
		components.ContentCard("Variable Expenses",
			expenseTotalBody(cli.FormatMoney(s.TotalVariable), len(a.snap.variable)), halves[1]),
	}))

	return b.String()
}

func expenseTotalBody(total string, count int) string {
	t := theme.Active
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	return valueStyle.Render(total) + "\n" + mutedStyle.Render(cli.FormatCount(count, "expense"))
}
