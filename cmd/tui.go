package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/budgie/internal/store"
	"github.com/theirongolddev/budgie/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive budget dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the dashboard needs an interactive terminal")
	}

	return withStore(cmd, func(ctx context.Context, st *store.Store) error {
		// Zero opens the dashboard on the first user, or on its new-user
		// form when there is none.
		var userID int64
		if ref := userRef(); ref != "" {
			u, err := lookupUser(ctx, st, ref)
			if err != nil {
				return err
			}
			userID = u.ID
		}

		// Force TrueColor so background fills render as ANSI codes.
		lipgloss.SetColorProfile(termenv.TrueColor)

		p := tea.NewProgram(tui.NewApp(st, userID), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	})
}
