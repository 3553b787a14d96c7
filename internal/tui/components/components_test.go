package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/budgie/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	widths := LayoutRow(100, 3)
	assert.Equal(t, []int{34, 33, 33}, widths)
	assert.Nil(t, LayoutRow(100, 0))
}

func TestCardRowPadsShortCards(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := lipgloss.Height(shortCard)
	tallLines := lipgloss.Height(tallCard)
	require.Less(t, shortLines, tallLines)

	lines := strings.Split(CardRow([]string{tallCard, shortCard}), "\n")
	require.Len(t, lines, tallLines)

	for i, line := range lines {
		assert.Equal(t, 44, lipgloss.Width(line), "line %d width", i)
		if i >= shortLines {
			assert.Contains(t, line, "\x1b[", "padding line %d must be styled", i)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Income", Value: "3,000.00"},
		{Label: "Disposable", Value: "-500.00", Color: theme.Active.Red, Note: "over budget"},
	}, 60)

	for i, line := range strings.Split(row, "\n") {
		assert.Equal(t, 60, lipgloss.Width(line), "line %d", i)
	}
	assert.Contains(t, row, "over budget")
}

func TestColorForUsage(t *testing.T) {
	theme.SetActive("flexoki-dark")
	assert.Equal(t, theme.Active.Green, ColorForUsage(10))
	assert.Equal(t, theme.Active.Yellow, ColorForUsage(70))
	assert.Equal(t, theme.Active.Orange, ColorForUsage(99))
	assert.Equal(t, theme.Active.Red, ColorForUsage(100))
}

func TestUsageBarWidth(t *testing.T) {
	bar := UsageBar("Used", 140, 6, 20)
	// label + space + bar + space + "100%"
	assert.Equal(t, 6+1+20+1+4, lipgloss.Width(bar))
	assert.Contains(t, bar, "100%")
}

func TestTabBarWidths(t *testing.T) {
	for active := range Tabs {
		bar := RenderTabBar(active, 80)
		assert.Equal(t, 80, lipgloss.Width(bar))
	}
	assert.Equal(t, 2, TabIdxByKey('v'))
	assert.Equal(t, -1, TabIdxByKey('z'))
}

func TestStatusBarFillsWidth(t *testing.T) {
	bar := RenderStatusBar(90, "[?]help  [q]uit", "Ana", "expense added", false)
	assert.Equal(t, 90, lipgloss.Width(bar))
	assert.Contains(t, bar, "Ana")
}
