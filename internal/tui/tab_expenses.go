package tui

import (
	"fmt"

	"github.com/theirongolddev/budgie/internal/cli"
	"github.com/theirongolddev/budgie/internal/tui/components"
	"github.com/theirongolddev/budgie/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	idColW     = 6
	amountColW = 14
	dateColW   = 12
	cellPad    = 2 // table cells pad one column each side

	// border (2) + title (1) + footer (1)
	expenseCardOverhead = 4
)

func tableStyles() table.Styles {
	t := theme.Active
	s := table.DefaultStyles()
	s.Header = s.Header.
		Foreground(t.Accent).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Bold(true)
	s.Cell = s.Cell.Foreground(t.TextPrimary)
	s.Selected = s.Selected.
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true)
	return s
}

func newExpenseTable(withDate bool) table.Model {
	tbl := table.New(
		table.WithColumns(expenseColumns(withDate, 80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	tbl.SetStyles(tableStyles())
	return tbl
}

// expenseColumns gives the category column whatever width is left.
func expenseColumns(withDate bool, width int) []table.Column {
	n := 3
	catW := width - idColW - amountColW
	if withDate {
		n++
		catW -= dateColW
	}
	catW = max(catW-n*cellPad, 12)

	cols := []table.Column{
		{Title: "ID", Width: idColW},
		{Title: "Category", Width: catW},
		{Title: fmt.Sprintf("%*s", amountColW, "Amount"), Width: amountColW},
	}
	if withDate {
		cols = append(cols, table.Column{Title: "Date", Width: dateColW})
	}
	return cols
}

func (a *App) resizeTables() {
	innerW := components.CardInnerWidth(a.contentWidth())
	h := max(a.contentHeight()-expenseCardOverhead, 3)

	a.fixedTable.SetColumns(expenseColumns(false, innerW))
	a.fixedTable.SetWidth(innerW)
	a.fixedTable.SetHeight(h)

	a.varTable.SetColumns(expenseColumns(true, innerW))
	a.varTable.SetWidth(innerW)
	a.varTable.SetHeight(h)
}

// refreshTables loads the current snapshot into both tables, keeping the
// cursors within the new row counts.
func (a *App) refreshTables() {
	fixedRows := make([]table.Row, len(a.snap.fixed))
	for i, e := range a.snap.fixed {
		fixedRows[i] = table.Row{
			fmt.Sprintf("#%d", e.ID),
			e.Category.String(),
			fmt.Sprintf("%*s", amountColW, cli.FormatMoney(e.Amount)),
		}
	}
	setRows(&a.fixedTable, fixedRows)

	varRows := make([]table.Row, len(a.snap.variable))
	for i, e := range a.snap.variable {
		varRows[i] = table.Row{
			fmt.Sprintf("#%d", e.ID),
			e.Category.String(),
			fmt.Sprintf("%*s", amountColW, cli.FormatMoney(e.Amount)),
			e.Date.String(),
		}
	}
	setRows(&a.varTable, varRows)
}

func setRows(tbl *table.Model, rows []table.Row) {
	tbl.SetRows(rows)
	if c := tbl.Cursor(); c >= len(rows) {
		tbl.SetCursor(max(len(rows)-1, 0))
	}
}

func (a *App) moveCursor(delta int) {
	tbl := a.activeTable()
	if tbl == nil {
		return
	}
	if delta < 0 {
		tbl.MoveUp(-delta)
	} else {
		tbl.MoveDown(delta)
	}
}

func (a *App) activeTable() *table.Model {
	switch a.activeTab {
	case tabFixed:
		return &a.fixedTable
	case tabVariable:
		return &a.varTable
	}
	return nil
}

// updateTable forwards navigation keys to the table on screen.
func (a App) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tbl := a.activeTable()
	if tbl == nil {
		return a, nil
	}
	var cmd tea.Cmd
	*tbl, cmd = tbl.Update(msg)
	return a, cmd
}

func (a App) renderFixedTab(cw int) string {
	s := a.snap.summary
	title := fmt.Sprintf("Fixed Expenses (%s)", cli.FormatCount(len(a.snap.fixed), "expense"))
	if len(a.snap.fixed) == 0 {
		return components.ContentCard(title, emptyListHint("fixed"), cw)
	}
	return components.ContentCard(title, a.fixedTable.View()+"\n"+totalLine(cli.FormatMoney(s.TotalFixed), cw), cw)
}

func (a App) renderVariableTab(cw int) string {
	s := a.snap.summary
	title := fmt.Sprintf("Variable Expenses (%s)", cli.FormatCount(len(a.snap.variable), "expense"))
	if len(a.snap.variable) == 0 {
		return components.ContentCard(title, emptyListHint("variable"), cw)
	}
	return components.ContentCard(title, a.varTable.View()+"\n"+totalLine(cli.FormatMoney(s.TotalVariable), cw), cw)
}

func emptyListHint(kind string) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	return style.Render(fmt.Sprintf("No %s expenses yet. Press a to add one.", kind))
}

// totalLine renders a "Total" row with the amount flush right.
func totalLine(total string, cw int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	innerW := components.CardInnerWidth(cw)
	label := labelStyle.Render("Total")
	value := valueStyle.Render(total)
	gap := max(innerW-lipgloss.Width(label)-lipgloss.Width(value), 1)
	return label + labelStyle.Render(fmt.Sprintf("%*s", gap, "")) + value
}
