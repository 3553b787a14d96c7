// Package cmd implements the budgie CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/theirongolddev/budgie/internal/budget"
	"github.com/theirongolddev/budgie/internal/config"
	"github.com/theirongolddev/budgie/internal/logging"
	"github.com/theirongolddev/budgie/internal/model"
	"github.com/theirongolddev/budgie/internal/store"
	"github.com/theirongolddev/budgie/internal/tui/theme"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagDB      string
	flagUser    string
	flagVerbose bool
	flagQuiet   bool
)

// appCfg is the configuration loaded before every command runs.
var appCfg = config.DefaultConfig()

var errNoUsers = errors.New("no users yet; run `budgie setup` or `budgie user add`")

var rootCmd = &cobra.Command{
	Use:               "budgie",
	Short:             "Personal monthly budget tracker",
	Long:              "Track income, savings and fixed and variable expenses, and see how much of the month is left to spend.",
	SilenceUsage:      true,
	PersistentPreRunE: prepare,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database file (default: $BUDGIE_DB, config, or the data directory)")
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "User id or name to act on")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log errors")
}

// prepare loads .env and the config file, then sets up logging and the theme.
func prepare(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	appCfg = cfg

	level := config.LogLevel(cfg)
	switch {
	case flagVerbose:
		level = "debug"
	case flagQuiet:
		level = "error"
	}
	if err := logging.Setup(level, cfg.Log.Format != "json", cmd.ErrOrStderr()); err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)
	return nil
}

func databasePath() string {
	if flagDB != "" {
		return flagDB
	}
	return config.DatabasePath(appCfg)
}

// openStore opens the database and brings its schema up to date.
func openStore(ctx context.Context) (*store.Store, error) {
	st, err := store.Open(databasePath())
	if err != nil {
		return nil, err
	}
	if err := st.EnsureSchema(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

// withStore opens the store for the duration of fn.
func withStore(cmd *cobra.Command, fn func(ctx context.Context, st *store.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()
	return fn(ctx, st)
}

// resolveUser picks the user a command acts on: --user, then the configured
// default, then the only user if there is exactly one.
func resolveUser(ctx context.Context, st *store.Store) (model.User, error) {
	if ref := userRef(); ref != "" {
		return lookupUser(ctx, st, ref)
	}

	users, err := st.ListUsers(ctx)
	if err != nil {
		return model.User{}, err
	}
	switch len(users) {
	case 0:
		return model.User{}, errNoUsers
	case 1:
		return users[0], nil
	default:
		return model.User{}, fmt.Errorf("%d users exist; pick one with --user", len(users))
	}
}

// userRef is the user named by --user or the config, or "".
func userRef() string {
	if flagUser != "" {
		return flagUser
	}
	return config.DefaultUser(appCfg)
}

// lookupUser treats a numeric ref as an id and anything else as a name.
func lookupUser(ctx context.Context, st *store.Store, ref string) (model.User, error) {
	if id, err := strconv.ParseInt(ref, 10, 64); err == nil {
		return st.GetUser(ctx, id)
	}
	return st.GetUserByName(ctx, ref)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a record id", model.ErrValidation, s)
	}
	return id, nil
}

// afterWrite reports a completed mutation and prints the user's summary as
// it now stands in the database.
func afterWrite(ctx context.Context, cmd *cobra.Command, st *store.Store, userID int64, msg string) error {
	log.Info().Int64("user_id", userID).Msg(msg)
	fmt.Fprintf(cmd.OutOrStdout(), "\n  %s\n", msg)

	s, err := budget.New(st).Summarize(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	printSummary(cmd.OutOrStdout(), s)
	return nil
}
