// Package tui provides the interactive Bubble Tea dashboard for budgie.
package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/budgie/internal/budget"
	"github.com/theirongolddev/budgie/internal/store"
	"github.com/theirongolddev/budgie/internal/tui/components"
	"github.com/theirongolddev/budgie/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	tabOverview = iota
	tabFixed
	tabVariable
	tabBreakdown
)

const (
	minTerminalWidth = 70
	compactWidth     = 100
	maxContentWidth  = 140
	minContentHeight = 5
	maxFormWidth     = 64
)

// App is the root Bubble Tea model.
type App struct {
	st     *store.Store
	engine *budget.Engine

	// Data
	snap   snapshot
	loaded bool
	userID int64 // user to show; 0 picks the first

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	fixedTable table.Model
	varTable   table.Model

	// Active huh form, if any
	form     *huh.Form
	formKind formKind
	formVals *formValues
	editID   int64

	pendingDelete bool

	status    string
	statusErr bool

	spinner spinner.Model
}

// NewApp creates the dashboard for userID, or the first user when 0.
func NewApp(st *store.Store, userID int64) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		st:         st,
		engine:     budget.New(st),
		userID:     userID,
		fixedTable: newExpenseTable(false),
		varTable:   newExpenseTable(true),
		spinner:    sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.spinner.Tick,
		reloadCmd(a.st, a.engine, a.userID),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeTables()
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth()).WithHeight(msg.Height)
		}
		return a, nil

	case SnapshotMsg:
		a.loaded = true
		a.snap = msg.snap
		a.userID = msg.snap.summary.User.ID
		a.status, a.statusErr = msg.status, false
		a.refreshTables()

		// First run: nobody to show yet.
		if !a.snap.hasUser() && a.form == nil {
			return a.openForm(formNewUser, &formValues{savings: "10"}, 0)
		}
		return a, nil

	case ErrMsg:
		a.loaded = true
		a.status, a.statusErr = msg.Err.Error(), true
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// Forms intercept all keys
	if a.form != nil {
		if key == "esc" {
			a.closeForm()
			a.status, a.statusErr = "cancelled", false
			return a, nil
		}
		return a.updateForm(msg)
	}

	if a.pendingDelete {
		a.pendingDelete = false
		if key == "y" {
			return a, a.deleteSelected()
		}
		a.status, a.statusErr = "delete cancelled", false
		return a, nil
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		return a, reloadCmd(a.st, a.engine, a.userID)
	case "n":
		return a.openForm(formNewUser, &formValues{savings: "10"}, 0)
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if len(msg.Runes) == 1 {
		if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
			a.activeTab = idx
			return a, nil
		}
	}

	if !a.snap.hasUser() {
		return a, nil
	}

	switch key {
	case "u":
		return a.nextUser()
	case "s":
		return a.openForm(formSavings, &formValues{savings: a.snap.summary.User.SavingsPct.String()}, 0)
	case "a":
		if a.activeTab == tabFixed {
			return a.openForm(formAddFixed, &formValues{}, 0)
		}
		return a.openForm(formAddVariable, &formValues{}, 0)
	case "e", "enter":
		return a.editSelected()
	case "d":
		if _, ok := a.selectedID(); ok {
			a.pendingDelete = true
			a.status, a.statusErr = "delete selected expense? y/n", false
		}
		return a, nil
	}

	return a.updateTable(msg)
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		submit := a.submitForm()
		a.closeForm()
		return a, submit
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	}

	return a, cmd
}

func (a App) openForm(kind formKind, vals *formValues, editID int64) (tea.Model, tea.Cmd) {
	var f *huh.Form
	switch kind {
	case formNewUser:
		f = newUserForm(vals)
	case formSavings:
		f = newSavingsForm(vals)
	case formAddFixed:
		f = newExpenseForm("New fixed expense", vals, false)
	case formEditFixed:
		f = newExpenseForm(fmt.Sprintf("Edit fixed expense #%d", editID), vals, false)
	case formAddVariable:
		f = newExpenseForm("New variable expense", vals, true)
	case formEditVariable:
		f = newExpenseForm(fmt.Sprintf("Edit variable expense #%d", editID), vals, true)
	default:
		return a, nil
	}

	if a.width > 0 {
		f = f.WithWidth(a.formWidth()).WithHeight(a.height)
	}
	a.form, a.formKind, a.formVals, a.editID = f, kind, vals, editID
	a.showHelp = false
	return a, a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.formKind = formNone
	a.formVals = nil
	a.editID = 0
}

func (a App) nextUser() (tea.Model, tea.Cmd) {
	users := a.snap.users
	if len(users) < 2 {
		return a, nil
	}
	next := users[(a.snap.userIndex()+1)%len(users)]
	a.userID = next.ID
	return a, reloadCmd(a.st, a.engine, next.ID)
}

func (a App) editSelected() (tea.Model, tea.Cmd) {
	switch a.activeTab {
	case tabFixed:
		i := a.fixedTable.Cursor()
		if i < 0 || i >= len(a.snap.fixed) {
			return a, nil
		}
		e := a.snap.fixed[i]
		return a.openForm(formEditFixed, &formValues{
			category: e.Category.String(),
			amount:   e.Amount.String(),
		}, e.ID)
	case tabVariable:
		i := a.varTable.Cursor()
		if i < 0 || i >= len(a.snap.variable) {
			return a, nil
		}
		e := a.snap.variable[i]
		return a.openForm(formEditVariable, &formValues{
			category: e.Category.String(),
			amount:   e.Amount.String(),
			date:     e.Date.String(),
		}, e.ID)
	}
	return a, nil
}

// selectedID returns the expense under the cursor on an expense tab.
func (a App) selectedID() (int64, bool) {
	switch a.activeTab {
	case tabFixed:
		if i := a.fixedTable.Cursor(); i >= 0 && i < len(a.snap.fixed) {
			return a.snap.fixed[i].ID, true
		}
	case tabVariable:
		if i := a.varTable.Cursor(); i >= 0 && i < len(a.snap.variable) {
			return a.snap.variable[i].ID, true
		}
	}
	return 0, false
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

func (a App) formWidth() int {
	return min(a.width-8, maxFormWidth)
}

// contentHeight is the space between the tab bar and the status bar.
func (a App) contentHeight() int {
	return max(a.height-2, minContentHeight)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.form != nil {
		return a.viewForm()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  budgie needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ budgie"))
	b.WriteString(subtitleStyle.Render(" · Monthly Budget"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subtitleStyle.Render(" Reading budget..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewForm() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 2)

	body := a.form.View()
	if a.status != "" && a.statusErr {
		body = lipgloss.NewStyle().Foreground(t.Red).Render(a.status) + "\n\n" + body
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		name     string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o f v b", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move in expense lists"},
			{"u", "Next user"},
		}},
		{"Actions", []struct{ key, desc string }{
			{"a", "Add expense"},
			{"e Enter", "Edit selected expense"},
			{"d", "Delete selected expense"},
			{"s", "Change savings percentage"},
			{"n", "New user"},
			{"r", "Reload"},
			{"Esc", "Cancel form"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.name))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	hints := "[a]dd  [s]avings  [u]ser  [?]help  [q]uit"
	if a.activeTab == tabFixed || a.activeTab == tabVariable {
		hints = "[a]dd  [e]dit  [d]elete  [?]help  [q]uit"
	}
	userName := ""
	if a.snap.hasUser() {
		userName = a.snap.summary.User.Name
	}
	statusBar := components.RenderStatusBar(w, hints, userName, a.status, a.statusErr)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch {
	case !a.snap.hasUser():
		content = a.renderEmpty(cw)
	case a.activeTab == tabOverview:
		content = a.renderOverviewTab(cw)
	case a.activeTab == tabFixed:
		content = a.renderFixedTab(cw)
	case a.activeTab == tabVariable:
		content = a.renderVariableTab(cw)
	case a.activeTab == tabBreakdown:
		content = a.renderBreakdownTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderEmpty(cw int) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	return components.ContentCard("No users yet", style.Render("Press n to create one."), cw)
}

// ─── Mouse Support ──────────────────────────────────────────────

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.loaded || a.form != nil || a.showHelp {
		return a, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		a.moveCursor(1)
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
