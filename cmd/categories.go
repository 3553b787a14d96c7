package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/theirongolddev/budgie/internal/budget"
	"github.com/theirongolddev/budgie/internal/cli"
	"github.com/theirongolddev/budgie/internal/model"
	"github.com/theirongolddev/budgie/internal/store"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cats"},
	Short:   "List expense categories and the user's spend in each",
	Args:    cobra.NoArgs,
	RunE:    runCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		out := cmd.OutOrStdout()

		var totals []budget.CategoryTotal
		title := "CATEGORIES"
		u, err := resolveUser(ctx, st)
		switch {
		case err == nil:
			totals, err = budget.New(st).Breakdown(ctx, u.ID)
			if err != nil {
				return err
			}
			title = fmt.Sprintf("CATEGORIES  %s", u.Name)
		case errors.Is(err, errNoUsers):
		default:
			return err
		}

		byCat := make(map[model.Category]budget.CategoryTotal, len(totals))
		var maxTotal float64
		for _, t := range totals {
			byCat[t.Category] = t
			maxTotal = max(maxTotal, t.Total.InexactFloat64())
		}

		rows := make([][]string, 0, len(model.Categories))
		for _, c := range model.Categories {
			t, ok := byCat[c]
			if !ok {
				rows = append(rows, []string{c.String(), "-", "-", "-", ""})
				continue
			}
			rows = append(rows, []string{
				c.String(),
				cli.FormatMoney(t.Fixed),
				cli.FormatMoney(t.Variable),
				cli.FormatMoney(t.Total),
				cli.RenderHorizontalBar(t.Total.InexactFloat64(), maxTotal, 20),
			})
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, cli.RenderTitle(title))
		fmt.Fprintln(out)
		fmt.Fprint(out, cli.RenderTable(cli.Table{
			Headers: []string{"Category", "Fixed", "Variable", "Total", ""},
			Rows:    rows,
		}))
		return nil
	})
}
