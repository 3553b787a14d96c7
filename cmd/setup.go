package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/budgie/internal/config"
	"github.com/theirongolddev/budgie/internal/model"
	"github.com/theirongolddev/budgie/internal/store"
	"github.com/theirongolddev/budgie/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup: create a user and pick a theme",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

type setupAnswers struct {
	name    string
	income  string
	savings string
	theme   string
}

func runSetup(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("setup needs an interactive terminal; use `budgie user add` instead")
	}

	ans := setupAnswers{savings: "10", theme: appCfg.Appearance.Theme}
	if err := setupForm(&ans).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Fprintln(cmd.OutOrStdout(), "\n  Setup cancelled.")
			return nil
		}
		return fmt.Errorf("running setup form: %w", err)
	}

	income, err := model.ParseAmount(ans.income)
	if err != nil {
		return err
	}
	pct, err := model.ParseAmount(ans.savings)
	if err != nil {
		return err
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		id, err := st.CreateUser(ctx, ans.name, income, pct)
		if err != nil {
			return err
		}

		cfg := appCfg
		cfg.General.DefaultUser = strconv.FormatInt(id, 10)
		cfg.Appearance.Theme = ans.theme
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		appCfg = cfg

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\n  Saved to %s\n", config.ConfigPath())
		fmt.Fprintln(out, "  Run `budgie setup` anytime to add another profile.")
		return afterWrite(ctx, cmd, st, id, fmt.Sprintf("Created user #%d", id))
	})
}

func setupForm(ans *setupAnswers) *huh.Form {
	themes := make([]huh.Option[string], 0, len(theme.Names()))
	for _, name := range theme.Names() {
		themes = append(themes, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to budgie").
				Description("A few questions to set up your first budget."),
			huh.NewInput().
				Title("Name").
				Value(&ans.name).
				Validate(func(s string) error {
					_, err := model.NormalizeName(s)
					return err
				}),
			huh.NewInput().
				Title("Monthly income").
				Placeholder("0.00").
				Value(&ans.income).
				Validate(func(s string) error {
					d, err := model.ParseAmount(s)
					if err != nil {
						return err
					}
					return model.ValidateIncome(d)
				}),
			huh.NewInput().
				Title("Savings percentage").
				Description("Share of income to set aside, 0-100").
				Value(&ans.savings).
				Validate(func(s string) error {
					_, err := model.ParseAmount(strings.TrimSpace(s))
					return err
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&ans.theme),
		),
	)
}
