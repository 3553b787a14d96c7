package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/theirongolddev/budgie/internal/budget"
	"github.com/theirongolddev/budgie/internal/cli"
	"github.com/theirongolddev/budgie/internal/store"

	"github.com/spf13/cobra"
)

const usageBarWidth = 30

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show savings, totals and what is left to spend",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		u, err := resolveUser(ctx, st)
		if err != nil {
			return err
		}
		s, err := budget.New(st).Summarize(ctx, u.ID)
		if err != nil {
			return err
		}
		printSummary(cmd.OutOrStdout(), s)
		return nil
	})
}

func printSummary(w io.Writer, s budget.Summary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle(fmt.Sprintf("BUDGET  %s", s.User.Name)))
	fmt.Fprintln(w)

	rows := [][]string{
		{"Income", cli.FormatMoney(s.User.Income)},
		{"Savings", fmt.Sprintf("%s  (%s)", cli.FormatMoney(s.Savings), cli.FormatPct(s.User.SavingsPct))},
		cli.SeparatorRow,
		{"Fixed Expenses", cli.FormatMoney(s.TotalFixed)},
		{"Variable Expenses", cli.FormatMoney(s.TotalVariable)},
		{"Committed", cli.FormatMoney(s.Committed)},
		cli.SeparatorRow,
		{"Disposable", cli.FormatMoney(s.Disposable)},
	}

	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Usage %s\n", cli.RenderUsageBar(s.UsageRatio, usageBarWidth))
	if s.OverCommitted {
		over := s.Committed.Sub(s.User.Income)
		fmt.Fprintf(w, "  %s\n", cli.RenderWarning("commitments exceed income by "+cli.FormatMoney(over)))
	}
	fmt.Fprintln(w)
}
