package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/theirongolddev/budgie/internal/cli"
	"github.com/theirongolddev/budgie/internal/model"
	"github.com/theirongolddev/budgie/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var fixedCmd = &cobra.Command{
	Use:   "fixed",
	Short: "Manage recurring monthly expenses",
}

var fixedAddCmd = &cobra.Command{
	Use:   "add CATEGORY AMOUNT",
	Short: "Add a fixed expense for the current user",
	Args:  cobra.ExactArgs(2),
	RunE:  runFixedAdd,
}

var fixedListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the current user's fixed expenses",
	Args:    cobra.NoArgs,
	RunE:    runFixedList,
}

var fixedEditCmd = &cobra.Command{
	Use:   "edit ID CATEGORY AMOUNT",
	Short: "Replace a fixed expense's category and amount",
	Args:  cobra.ExactArgs(3),
	RunE:  runFixedEdit,
}

var fixedDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a fixed expense",
	Args:    cobra.ExactArgs(1),
	RunE:    runFixedDelete,
}

func init() {
	fixedCmd.AddCommand(fixedAddCmd, fixedListCmd, fixedEditCmd, fixedDeleteCmd)
	rootCmd.AddCommand(fixedCmd)
}

// parseExpenseArgs reads the CATEGORY AMOUNT pair shared by the expense
// commands.
func parseExpenseArgs(category, amount string) (model.Category, decimal.Decimal, error) {
	c, err := model.ParseCategory(category)
	if err != nil {
		return "", decimal.Zero, err
	}
	a, err := model.ParseAmount(amount)
	if err != nil {
		return "", decimal.Zero, err
	}
	return c, a, nil
}

func runFixedAdd(cmd *cobra.Command, args []string) error {
	category, amount, err := parseExpenseArgs(args[0], args[1])
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		u, err := resolveUser(ctx, st)
		if err != nil {
			return err
		}
		id, err := st.AddFixedExpense(ctx, u.ID, category, amount)
		if err != nil {
			return err
		}
		return afterWrite(ctx, cmd, st, u.ID,
			fmt.Sprintf("Added fixed expense #%d: %s %s", id, category, cli.FormatMoney(amount)))
	})
}

func runFixedList(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		u, err := resolveUser(ctx, st)
		if err != nil {
			return err
		}
		items, err := st.ListFixedExpenses(ctx, u.ID)
		if err != nil {
			return err
		}
		total, err := st.SumFixedExpenses(ctx, u.ID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(items) == 0 {
			fmt.Fprintf(out, "\n  No fixed expenses for %s.\n\n", u.Name)
			return nil
		}

		rows := make([][]string, 0, len(items)+2)
		for _, e := range items {
			rows = append(rows, []string{
				strconv.FormatInt(e.ID, 10),
				e.Category.String(),
				cli.FormatMoney(e.Amount),
			})
		}
		rows = append(rows, cli.SeparatorRow, []string{"", "Total", cli.FormatMoney(total.Round(2))})

		fmt.Fprintln(out)
		fmt.Fprint(out, cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Fixed expenses  %s", u.Name),
			Headers: []string{"ID", "Category", "Amount"},
			Rows:    rows,
		}))
		return nil
	})
}

func runFixedEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	category, amount, err := parseExpenseArgs(args[1], args[2])
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		if err := st.UpdateFixedExpense(ctx, id, category, amount); err != nil {
			return err
		}
		e, err := st.GetFixedExpense(ctx, id)
		if err != nil {
			return err
		}
		return afterWrite(ctx, cmd, st, e.UserID, fmt.Sprintf("Updated fixed expense #%d", id))
	})
}

func runFixedDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		e, err := st.GetFixedExpense(ctx, id)
		if err != nil {
			return err
		}
		if err := st.DeleteFixedExpense(ctx, id); err != nil {
			return err
		}
		return afterWrite(ctx, cmd, st, e.UserID, fmt.Sprintf("Deleted fixed expense #%d", id))
	})
}
