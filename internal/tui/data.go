package tui

import (
	"context"

	"github.com/theirongolddev/budgie/internal/budget"
	"github.com/theirongolddev/budgie/internal/model"
	"github.com/theirongolddev/budgie/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

// snapshot is everything the dashboard shows for one user, read in one go.
// It is never patched in place: every change produces a new snapshot.
type snapshot struct {
	users     []model.User
	summary   budget.Summary
	fixed     []model.FixedExpense
	variable  []model.VariableExpense
	breakdown []budget.CategoryTotal
}

func (s snapshot) hasUser() bool {
	return len(s.users) > 0
}

// userIndex returns the position of the summarized user in users.
func (s snapshot) userIndex() int {
	for i, u := range s.users {
		if u.ID == s.summary.User.ID {
			return i
		}
	}
	return 0
}

// SnapshotMsg carries freshly read data, optionally after a mutation that
// produced status.
type SnapshotMsg struct {
	snap   snapshot
	status string
}

// ErrMsg reports a failed read or write. The dashboard keeps its last data.
type ErrMsg struct {
	Err error
}

// loadSnapshot reads the user list and everything shown for userID. When
// userID is unknown the first user is shown instead.
func loadSnapshot(ctx context.Context, st *store.Store, engine *budget.Engine, userID int64) (snapshot, error) {
	var snap snapshot

	users, err := st.ListUsers(ctx)
	if err != nil {
		return snap, err
	}
	snap.users = users
	if len(users) == 0 {
		return snap, nil
	}

	current := users[0].ID
	for _, u := range users {
		if u.ID == userID {
			current = u.ID
			break
		}
	}

	if snap.summary, err = engine.Summarize(ctx, current); err != nil {
		return snap, err
	}
	if snap.fixed, err = st.ListFixedExpenses(ctx, current); err != nil {
		return snap, err
	}
	if snap.variable, err = st.ListVariableExpenses(ctx, current); err != nil {
		return snap, err
	}
	if snap.breakdown, err = engine.Breakdown(ctx, current); err != nil {
		return snap, err
	}
	return snap, nil
}

// reloadCmd re-reads the data for userID.
func reloadCmd(st *store.Store, engine *budget.Engine, userID int64) tea.Cmd {
	return func() tea.Msg {
		snap, err := loadSnapshot(context.Background(), st, engine, userID)
		if err != nil {
			log.Error().Err(err).Int64("user_id", userID).Msg("loading dashboard data")
			return ErrMsg{Err: err}
		}
		return SnapshotMsg{snap: snap}
	}
}

// mutateCmd runs a write and then reads a fresh snapshot for the user the
// write returns, or userID when it returns 0.
func mutateCmd(st *store.Store, engine *budget.Engine, userID int64, status string,
	write func(ctx context.Context) (int64, error),
) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		selected, err := write(ctx)
		if err != nil {
			log.Error().Err(err).Int64("user_id", userID).Str("action", status).Msg("dashboard write failed")
			return ErrMsg{Err: err}
		}
		if selected == 0 {
			selected = userID
		}

		snap, err := loadSnapshot(ctx, st, engine, selected)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return SnapshotMsg{snap: snap, status: status}
	}
}
