package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "0.00",
		"12.5":       "12.50",
		"1234.567":   "1,234.57",
		"-500":       "-500.00",
		"1000000.10": "1,000,000.10",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "12.5%", FormatPct(decimal.RequireFromString("12.5")))
	assert.Equal(t, "100%", FormatRatio(100))
	assert.Equal(t, "1 expense", FormatCount(1, "expense"))
	assert.Equal(t, "0 expenses", FormatCount(0, "expense"))
}

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Category", "Amount"},
		Rows: [][]string{
			{"Rent", "1,200.00"},
			SeparatorRow,
			{"Total", "1,200.00"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	for _, l := range lines[1:] {
		assert.Equal(t, lipgloss.Width(lines[0]), lipgloss.Width(l), "ragged line %q", l)
	}
	assert.Contains(t, lines[3], "│ Rent     │ 1,200.00 │")
	assert.True(t, strings.HasPrefix(lines[4], "├"))
}

func TestRenderTableEmpty(t *testing.T) {
	assert.Empty(t, RenderTable(Table{}))
}

func TestRenderUsageBar(t *testing.T) {
	assert.Equal(t, "[█████░░░░░] 50%", RenderUsageBar(50, 10))
	assert.Equal(t, "[██████████] 100%", RenderUsageBar(140, 10))
	assert.Equal(t, "[░░░░░░░░░░] 0%", RenderUsageBar(-3, 10))
}

func TestColorForUsage(t *testing.T) {
	assert.Equal(t, ColorGreen, ColorForUsage(10))
	assert.Equal(t, ColorYellow, ColorForUsage(75))
	assert.Equal(t, ColorOrange, ColorForUsage(95))
	assert.Equal(t, ColorRed, ColorForUsage(100))
}

func TestRenderHorizontalBar(t *testing.T) {
	assert.Equal(t, "█████", RenderHorizontalBar(50, 100, 10))
	assert.Empty(t, RenderHorizontalBar(5, 0, 10))
}
