// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with thousands separators and two decimals.
// e.g., 1234.5 -> "1,234.50", -500 -> "-500.00"
func FormatMoney(d decimal.Decimal) string {
	return humanize.FormatFloat("#,###.##", d.Round(2).InexactFloat64())
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPct formats a percentage value as stored, e.g. 12.5 -> "12.5%".
func FormatPct(d decimal.Decimal) string {
	return d.String() + "%"
}

// FormatRatio formats a whole-number usage percentage.
func FormatRatio(pct int) string {
	return fmt.Sprintf("%d%%", pct)
}

// FormatCount formats a count with a singular or plural noun.
// e.g., (1, "expense") -> "1 expense", (3, "expense") -> "3 expenses"
func FormatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return FormatNumber(int64(n)) + " " + noun + "s"
}
