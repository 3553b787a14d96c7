package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/budgie/internal/config"
	"github.com/theirongolddev/budgie/internal/model"
	"github.com/theirongolddev/budgie/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

// isolate points config and database at fresh temp locations.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "budget.db")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv(config.EnvDatabase, dbPath)
	t.Setenv(config.EnvUser, "")
	t.Setenv(config.EnvLogLevel, "")
	return dbPath
}

// resetFlags restores every flag to its default between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI with args and returns what it printed on stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	if args == nil {
		// cobra falls back to os.Args on nil
		args = []string{}
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	require.NoError(t, err, "budgie %v", args)
	return out
}

func TestSummaryWithoutExpenses(t *testing.T) {
	isolate(t)

	out := mustExecute(t, "user", "add", "Ann", "--income", "3000", "--savings", "10")
	assert.Contains(t, out, "Created user #1")
	assert.Contains(t, out, "300.00")
	assert.Contains(t, out, "2,700.00")
	assert.Contains(t, out, "10%")
	assert.NotContains(t, out, "exceed")

	// summary is also the default command
	assert.Contains(t, mustExecute(t), "BUDGET  Ann")
}

func TestSummaryOverCommitted(t *testing.T) {
	isolate(t)
	mustExecute(t, "user", "add", "Ann", "--income", "3000", "--savings", "10")

	out := mustExecute(t, "fixed", "add", "rent", "1200")
	assert.Contains(t, out, "Added fixed expense #1: Rent 1,200.00")

	out = mustExecute(t, "variable", "add", "Food", "2000", "--date", "2024-01-05")
	assert.Contains(t, out, "on 2024-01-05")
	assert.Contains(t, out, "3,500.00")
	assert.Contains(t, out, "-500.00")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "commitments exceed income by 500.00")
}

func TestSummaryZeroIncome(t *testing.T) {
	isolate(t)
	mustExecute(t, "user", "add", "Zed", "--income", "0", "--savings", "50")

	out := mustExecute(t, "summary")
	assert.Contains(t, out, "0.00")
	assert.Contains(t, out, "0%")
	assert.NotContains(t, out, "exceed")
}

func TestNoUsers(t *testing.T) {
	isolate(t)

	_, err := execute(t, "summary")
	require.ErrorIs(t, err, errNoUsers)

	out := mustExecute(t, "user", "list")
	assert.Contains(t, out, "no users yet")
}

func TestUserResolution(t *testing.T) {
	isolate(t)
	mustExecute(t, "user", "add", "Ann", "--income", "3000")
	mustExecute(t, "user", "add", "Bob", "--income", "2000")

	_, err := execute(t, "fixed", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pick one with --user")

	mustExecute(t, "--user", "Bob", "fixed", "add", "Utilities", "80")
	out := mustExecute(t, "--user", "2", "fixed", "list")
	assert.Contains(t, out, "Utilities")
	assert.Contains(t, out, "80.00")

	out = mustExecute(t, "--user", "Ann", "fixed", "list")
	assert.Contains(t, out, "No fixed expenses for Ann")

	t.Setenv(config.EnvUser, "Bob")
	assert.Contains(t, mustExecute(t, "summary"), "BUDGET  Bob")

	_, err = execute(t, "--user", "Nobody", "summary")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestExpenseInputErrors(t *testing.T) {
	isolate(t)
	mustExecute(t, "user", "add", "Ann", "--income", "3000")

	_, err := execute(t, "fixed", "add", "Rent", "0")
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = execute(t, "fixed", "add", "Snacks", "5")
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = execute(t, "variable", "add", "Food", "5", "--date", "05/01/2024")
	require.ErrorIs(t, err, model.ErrValidation)

	_, err = execute(t, "fixed", "edit", "99", "Rent", "10")
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = execute(t, "variable", "delete", "abc")
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestExpenseEditAndDelete(t *testing.T) {
	dbPath := isolate(t)
	mustExecute(t, "user", "add", "Ann", "--income", "3000")
	mustExecute(t, "fixed", "add", "Rent", "1000")
	mustExecute(t, "variable", "add", "Food", "12,50", "--date", "2024-03-01")

	out := mustExecute(t, "fixed", "edit", "1", "Rent", "1100")
	assert.Contains(t, out, "Updated fixed expense #1")
	assert.Contains(t, out, "1,100.00")

	mustExecute(t, "variable", "edit", "1", "Health", "20")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	ctx := context.Background()
	v, err := st.GetVariableExpense(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.Health, v.Category)
	assert.Equal(t, "2024-03-01", v.Date.String(), "edit without --date keeps the date")
	require.NoError(t, st.Close())

	out = mustExecute(t, "fixed", "delete", "1")
	assert.Contains(t, out, "Deleted fixed expense #1")

	_, err = execute(t, "fixed", "delete", "1")
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserUpdateAndSavings(t *testing.T) {
	dbPath := isolate(t)
	mustExecute(t, "user", "add", "Ann", "--income", "3000", "--savings", "10")

	mustExecute(t, "user", "update", "1", "--income", "4000")
	out := mustExecute(t, "user", "show")
	assert.Contains(t, out, "4,000.00")
	assert.Contains(t, out, "10%", "savings untouched")

	out = mustExecute(t, "user", "savings", "25")
	assert.Contains(t, out, "Savings set to 25%")
	assert.Contains(t, out, "1,000.00")

	_, err := execute(t, "user", "update", "1", "--name", "  ")
	require.ErrorIs(t, err, model.ErrValidation)

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	u, err := st.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)
	require.NoError(t, st.Close())
}

func TestUserDeleteKeepsExpenses(t *testing.T) {
	dbPath := isolate(t)
	mustExecute(t, "user", "add", "Ann", "--income", "3000")
	mustExecute(t, "fixed", "add", "Rent", "900")

	out := mustExecute(t, "user", "delete", "1")
	assert.Contains(t, out, "Deleted user #1")
	assert.NotContains(t, out, "BUDGET")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()
	e, err := st.GetFixedExpense(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.UserID)
}

func TestCategories(t *testing.T) {
	isolate(t)

	out := mustExecute(t, "categories")
	for _, c := range model.Categories {
		assert.Contains(t, out, c.String())
	}

	mustExecute(t, "user", "add", "Ann", "--income", "3000")
	mustExecute(t, "fixed", "add", "Rent", "1000")
	mustExecute(t, "variable", "add", "Rent", "50")
	out = mustExecute(t, "categories")
	assert.Contains(t, out, "CATEGORIES  Ann")
	assert.Contains(t, out, "1,050.00")
}

func TestConfigCommand(t *testing.T) {
	dbPath := isolate(t)

	out := mustExecute(t, "config")
	assert.Contains(t, out, "using defaults")
	assert.Contains(t, out, dbPath)
	assert.Contains(t, out, "Default user: not set")
	assert.Contains(t, out, "flexoki-dark")

	out = mustExecute(t, "--db", "/tmp/other.db", "config")
	assert.Contains(t, out, "/tmp/other.db")
}
