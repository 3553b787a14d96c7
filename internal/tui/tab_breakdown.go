package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/budgie/internal/cli"
	"github.com/theirongolddev/budgie/internal/tui/components"
	"github.com/theirongolddev/budgie/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBreakdownTab(cw int) string {
	t := theme.Active
	cats := a.snap.breakdown

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface)

	if len(cats) == 0 {
		return components.ContentCard("Spending by Category", mutedStyle.Render("Nothing spent yet."), cw)
	}

	innerW := components.CardInnerWidth(cw)
	nameW := 14
	numW := 12
	compact := a.isCompactLayout()

	fixedCols := nameW + numW + 1
	if !compact {
		fixedCols += 2 * (numW + 1)
	}
	barMax := max(innerW-fixedCols-1, 0)

	maxTotal := cats[0].Total
	for _, c := range cats[1:] {
		if c.Total.GreaterThan(maxTotal) {
			maxTotal = c.Total
		}
	}

	var body strings.Builder
	if compact {
		body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s", nameW, "Category", numW, "Total")))
	} else {
		body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s", nameW, "Category", numW, "Fixed", numW, "Variable", numW, "Total")))
	}
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	for _, c := range cats {
		body.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(c.Category.String(), nameW))))
		if !compact {
			body.WriteString(rowStyle.Render(fmt.Sprintf(" %*s %*s",
				numW, cli.FormatMoney(c.Fixed),
				numW, cli.FormatMoney(c.Variable))))
		}
		body.WriteString(rowStyle.Render(fmt.Sprintf(" %*s", numW, cli.FormatMoney(c.Total))))
		if barMax > 0 {
			bar := cli.RenderHorizontalBar(c.Total.InexactFloat64(), maxTotal.InexactFloat64(), barMax)
			body.WriteString(rowStyle.Render(" "))
			body.WriteString(bar)
		}
		body.WriteString("\n")
	}

	s := a.snap.summary
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s", nameW, "All")))
	if !compact {
		body.WriteString(rowStyle.Render(fmt.Sprintf(" %*s %*s",
			numW, cli.FormatMoney(s.TotalFixed),
			numW, cli.FormatMoney(s.TotalVariable))))
	}
	body.WriteString(rowStyle.Render(fmt.Sprintf(" %*s", numW, cli.FormatMoney(s.TotalFixed.Add(s.TotalVariable)))))

	return components.ContentCard("Spending by Category", body.String(), cw)
}
