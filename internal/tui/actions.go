package tui

import (
	"context"
	"strings"

	"github.com/theirongolddev/budgie/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return ErrMsg{Err: err} }
}

// parsePct reads an optional percentage; empty means zero.
func parsePct(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return model.ParseAmount(s)
}

type expenseInput struct {
	category model.Category
	amount   decimal.Decimal
	date     model.Date
}

func parseExpenseInput(vals formValues) (expenseInput, error) {
	var in expenseInput
	var err error

	if in.category, err = model.ParseCategory(vals.category); err != nil {
		return in, err
	}
	if in.amount, err = model.ParseAmount(vals.amount); err != nil {
		return in, err
	}
	if strings.TrimSpace(vals.date) != "" {
		if in.date, err = model.ParseDate(vals.date); err != nil {
			return in, err
		}
	}
	return in, nil
}

// submitForm turns the completed form into a write followed by a reload.
func (a App) submitForm() tea.Cmd {
	if a.formVals == nil {
		return nil
	}
	st, engine, userID, editID := a.st, a.engine, a.userID, a.editID
	vals := *a.formVals

	switch a.formKind {
	case formNewUser:
		income, err := model.ParseAmount(vals.income)
		if err != nil {
			return errCmd(err)
		}
		pct, err := parsePct(vals.savings)
		if err != nil {
			return errCmd(err)
		}
		return mutateCmd(st, engine, userID, "user created", func(ctx context.Context) (int64, error) {
			return st.CreateUser(ctx, vals.name, income, pct)
		})

	case formSavings:
		pct, err := parsePct(vals.savings)
		if err != nil {
			return errCmd(err)
		}
		return mutateCmd(st, engine, userID, "savings updated", func(ctx context.Context) (int64, error) {
			return 0, st.UpdateSavingsPct(ctx, userID, pct)
		})
	}

	in, err := parseExpenseInput(vals)
	if err != nil {
		return errCmd(err)
	}

	switch a.formKind {
	case formAddFixed:
		return mutateCmd(st, engine, userID, "fixed expense added", func(ctx context.Context) (int64, error) {
			_, err := st.AddFixedExpense(ctx, userID, in.category, in.amount)
			return 0, err
		})
	case formEditFixed:
		return mutateCmd(st, engine, userID, "fixed expense updated", func(ctx context.Context) (int64, error) {
			return 0, st.UpdateFixedExpense(ctx, editID, in.category, in.amount)
		})
	case formAddVariable:
		return mutateCmd(st, engine, userID, "variable expense added", func(ctx context.Context) (int64, error) {
			_, err := st.AddVariableExpense(ctx, userID, in.category, in.amount, in.date)
			return 0, err
		})
	case formEditVariable:
		return mutateCmd(st, engine, userID, "variable expense updated", func(ctx context.Context) (int64, error) {
			return 0, st.UpdateVariableExpense(ctx, editID, in.category, in.amount, in.date)
		})
	}
	return nil
}

// deleteSelected removes the expense under the cursor.
func (a App) deleteSelected() tea.Cmd {
	id, ok := a.selectedID()
	if !ok {
		return nil
	}
	st, engine, userID := a.st, a.engine, a.userID

	if a.activeTab == tabFixed {
		return mutateCmd(st, engine, userID, "fixed expense deleted", func(ctx context.Context) (int64, error) {
			return 0, st.DeleteFixedExpense(ctx, id)
		})
	}
	return mutateCmd(st, engine, userID, "variable expense deleted", func(ctx context.Context) (int64, error) {
		return 0, st.DeleteVariableExpense(ctx, id)
	})
}
