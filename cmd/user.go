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

var (
	flagAddIncome  string
	flagAddSavings string

	flagUpdateName    string
	flagUpdateIncome  string
	flagUpdateSavings string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Create a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserAdd,
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List users",
	Args:    cobra.NoArgs,
	RunE:    runUserList,
}

var userShowCmd = &cobra.Command{
	Use:   "show [ID]",
	Short: "Show a user (default: the current user)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runUserShow,
}

var userUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Change a user's name, income or savings percentage",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserUpdate,
}

var userDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm"},
	Short:   "Delete a user (their expenses are kept)",
	Args:    cobra.ExactArgs(1),
	RunE:    runUserDelete,
}

var userSavingsCmd = &cobra.Command{
	Use:   "savings PERCENT",
	Short: "Set the current user's savings percentage",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserSavings,
}

func init() {
	userAddCmd.Flags().StringVar(&flagAddIncome, "income", "", "Monthly income")
	userAddCmd.Flags().StringVar(&flagAddSavings, "savings", "0", "Savings percentage of income")
	_ = userAddCmd.MarkFlagRequired("income")

	userUpdateCmd.Flags().StringVar(&flagUpdateName, "name", "", "New name")
	userUpdateCmd.Flags().StringVar(&flagUpdateIncome, "income", "", "New monthly income")
	userUpdateCmd.Flags().StringVar(&flagUpdateSavings, "savings", "", "New savings percentage")

	userCmd.AddCommand(userAddCmd, userListCmd, userShowCmd, userUpdateCmd, userDeleteCmd, userSavingsCmd)
	rootCmd.AddCommand(userCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	income, err := model.ParseAmount(flagAddIncome)
	if err != nil {
		return err
	}
	pct, err := model.ParseAmount(flagAddSavings)
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		id, err := st.CreateUser(ctx, args[0], income, pct)
		if err != nil {
			return err
		}
		return afterWrite(ctx, cmd, st, id, fmt.Sprintf("Created user #%d", id))
	})
}

func runUserList(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		users, err := st.ListUsers(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(users) == 0 {
			fmt.Fprintf(out, "\n  %s\n\n", errNoUsers)
			return nil
		}

		rows := make([][]string, 0, len(users))
		for _, u := range users {
			rows = append(rows, []string{
				strconv.FormatInt(u.ID, 10),
				u.Name,
				cli.FormatMoney(u.Income),
				cli.FormatPct(u.SavingsPct),
			})
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, cli.RenderTable(cli.Table{
			Title:   cli.FormatCount(len(users), "user"),
			Headers: []string{"ID", "Name", "Income", "Savings"},
			Rows:    rows,
		}))
		return nil
	})
}

func runUserShow(cmd *cobra.Command, args []string) error {
	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		var (
			u   model.User
			err error
		)
		if len(args) == 1 {
			var id int64
			if id, err = parseID(args[0]); err != nil {
				return err
			}
			u, err = st.GetUser(ctx, id)
		} else {
			u, err = resolveUser(ctx, st)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprint(out, cli.RenderTable(cli.Table{
			Headers: []string{"Field", "Value"},
			Rows: [][]string{
				{"ID", strconv.FormatInt(u.ID, 10)},
				{"Name", u.Name},
				{"Income", cli.FormatMoney(u.Income)},
				{"Savings", cli.FormatPct(u.SavingsPct)},
			},
		}))
		return nil
	})
}

func runUserUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		u, err := st.GetUser(ctx, id)
		if err != nil {
			return err
		}

		name := u.Name
		if cmd.Flags().Changed("name") {
			name = flagUpdateName
		}
		income, err := amountFlag(cmd, "income", flagUpdateIncome, u.Income)
		if err != nil {
			return err
		}
		pct, err := amountFlag(cmd, "savings", flagUpdateSavings, u.SavingsPct)
		if err != nil {
			return err
		}

		if err := st.UpdateUser(ctx, id, name, income, pct); err != nil {
			return err
		}
		return afterWrite(ctx, cmd, st, id, fmt.Sprintf("Updated user #%d", id))
	})
}

func runUserDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		if err := st.DeleteUser(ctx, id); err != nil {
			return err
		}
		return afterWrite(ctx, cmd, st, id, fmt.Sprintf("Deleted user #%d", id))
	})
}

func runUserSavings(cmd *cobra.Command, args []string) error {
	pct, err := model.ParseAmount(args[0])
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		u, err := resolveUser(ctx, st)
		if err != nil {
			return err
		}
		if err := st.UpdateSavingsPct(ctx, u.ID, pct); err != nil {
			return err
		}
		return afterWrite(ctx, cmd, st, u.ID, fmt.Sprintf("Savings set to %s", cli.FormatPct(pct)))
	})
}

// amountFlag parses the named flag when it was given and keeps current
// otherwise.
func amountFlag(cmd *cobra.Command, name, value string, current decimal.Decimal) (decimal.Decimal, error) {
	if !cmd.Flags().Changed(name) {
		return current, nil
	}
	return model.ParseAmount(value)
}
