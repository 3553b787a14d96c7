package cmd

import (
	"fmt"

	"github.com/theirongolddev/budgie/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Fprintln(out, "  Status: loaded")
	} else {
		fmt.Fprintln(out, "  Status: using defaults (no config file)")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [General]")
	fmt.Fprintf(out, "    Database:     %s\n", databasePath())
	if u := config.DefaultUser(appCfg); u != "" {
		fmt.Fprintf(out, "    Default user: %s\n", u)
	} else {
		fmt.Fprintln(out, "    Default user: not set")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Appearance]")
	fmt.Fprintf(out, "    Theme: %s\n", appCfg.Appearance.Theme)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "  [Log]")
	level := config.LogLevel(appCfg)
	if level == "" {
		level = "warn"
	}
	fmt.Fprintf(out, "    Level:  %s\n", level)
	fmt.Fprintf(out, "    Format: %s\n", appCfg.Log.Format)
	fmt.Fprintln(out)

	fmt.Fprintf(out, "  Overrides: $%s, $%s, $%s (also read from ./.env)\n",
		config.EnvDatabase, config.EnvUser, config.EnvLogLevel)
	fmt.Fprintln(out, "  Run `budgie setup` to reconfigure.")
	return nil
}
