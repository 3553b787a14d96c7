package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/theirongolddev/budgie/internal/cli"
	"github.com/theirongolddev/budgie/internal/model"
	"github.com/theirongolddev/budgie/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagAddDate  string
	flagEditDate string
)

var variableCmd = &cobra.Command{
	Use:     "variable",
	Aliases: []string{"var"},
	Short:   "Manage dated one-off expenses",
}

var variableAddCmd = &cobra.Command{
	Use:   "add CATEGORY AMOUNT",
	Short: "Add a variable expense for the current user",
	Args:  cobra.ExactArgs(2),
	RunE:  runVariableAdd,
}

var variableListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the current user's variable expenses by date",
	Args:    cobra.NoArgs,
	RunE:    runVariableList,
}

var variableEditCmd = &cobra.Command{
	Use:   "edit ID CATEGORY AMOUNT",
	Short: "Replace a variable expense's category, amount and date",
	Args:  cobra.ExactArgs(3),
	RunE:  runVariableEdit,
}

var variableDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a variable expense",
	Args:    cobra.ExactArgs(1),
	RunE:    runVariableDelete,
}

func init() {
	variableAddCmd.Flags().StringVar(&flagAddDate, "date", "", "Expense date as YYYY-MM-DD (default today)")
	variableEditCmd.Flags().StringVar(&flagEditDate, "date", "", "New date as YYYY-MM-DD (default: keep)")

	variableCmd.AddCommand(variableAddCmd, variableListCmd, variableEditCmd, variableDeleteCmd)
	rootCmd.AddCommand(variableCmd)
}

// parseDateFlag reads an optional date; empty yields the zero Date.
func parseDateFlag(s string) (model.Date, error) {
	if s == "" {
		return model.Date{}, nil
	}
	return model.ParseDate(s)
}

func runVariableAdd(cmd *cobra.Command, args []string) error {
	category, amount, err := parseExpenseArgs(args[0], args[1])
	if err != nil {
		return err
	}
	date, err := parseDateFlag(flagAddDate)
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		u, err := resolveUser(ctx, st)
		if err != nil {
			return err
		}
		id, err := st.AddVariableExpense(ctx, u.ID, category, amount, date)
		if err != nil {
			return err
		}
		return afterWrite(ctx, cmd, st, u.ID,
			fmt.Sprintf("Added variable expense #%d: %s %s on %s", id, category, cli.FormatMoney(amount), date.OrToday()))
	})
}

func runVariableList(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		u, err := resolveUser(ctx, st)
		if err != nil {
			return err
		}
		items, err := st.ListVariableExpenses(ctx, u.ID)
		if err != nil {
			return err
		}
		total, err := st.SumVariableExpenses(ctx, u.ID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(items) == 0 {
			fmt.Fprintf(out, "\n  No variable expenses for %s.\n\n", u.Name)
			return nil
		}

		rows := make([][]string, 0, len(items)+2)
		for _, e := range items {
			rows = append(rows, []string{
				strconv.FormatInt(e.ID, 10),
				e.Date.String(),
				e.Category.String(),
				cli.FormatMoney(e.Amount),
			})
		}
		rows = append(rows, cli.SeparatorRow, []string{"", "", "Total", cli.FormatMoney(total.Round(2))})

		fmt.Fprintln(out)
		fmt.Fprint(out, cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Variable expenses  %s", u.Name),
			Headers: []string{"ID", "Date", "Category", "Amount"},
			Rows:    rows,
		}))
		return nil
	})
}

func runVariableEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	category, amount, err := parseExpenseArgs(args[1], args[2])
	if err != nil {
		return err
	}
	date, err := parseDateFlag(flagEditDate)
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		e, err := st.GetVariableExpense(ctx, id)
		if err != nil {
			return err
		}
		if date.IsZero() {
			date = e.Date
		}
		if err := st.UpdateVariableExpense(ctx, id, category, amount, date); err != nil {
			return err
		}
		return afterWrite(ctx, cmd, st, e.UserID, fmt.Sprintf("Updated variable expense #%d", id))
	})
}

func runVariableDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		e, err := st.GetVariableExpense(ctx, id)
		if err != nil {
			return err
		}
		if err := st.DeleteVariableExpense(ctx, id); err != nil {
			return err
		}
		return afterWrite(ctx, cmd, st, e.UserID, fmt.Sprintf("Deleted variable expense #%d", id))
	})
}
