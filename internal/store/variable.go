package store

import (
	"context"
	"fmt"

	"github.com/theirongolddev/budgie/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const variableColumns = "id, user_id, category, amount, date"

func scanVariable(row rowScanner) (model.VariableExpense, error) {
	var (
		e       model.VariableExpense
		cat     string
		dateStr string
	)
	if err := row.Scan(&e.ID, &e.UserID, &cat, &e.Amount, &dateStr); err != nil {
		return e, err
	}
	e.Category = model.Category(cat)

	d, err := model.ParseDate(dateStr)
	if err != nil {
		return e, fmt.Errorf("variable expense %d: %w", e.ID, err)
	}
	e.Date = d
	return e, nil
}

// AddVariableExpense records a dated expense for an existing user and
// returns its id. A zero date is stored as today.
func (s *Store) AddVariableExpense(ctx context.Context, userID int64, category model.Category, amount decimal.Decimal, date model.Date) (int64, error) {
	if err := category.Validate(); err != nil {
		return 0, err
	}
	if err := model.ValidateAmount(amount); err != nil {
		return 0, err
	}
	date = date.OrToday()

	res, err := s.db.ExecContext(ctx, `INSERT INTO variable_expenses (user_id, category, amount, date)
		SELECT ?, ?, ?, ? WHERE EXISTS (SELECT 1 FROM users WHERE id = ?)`,
		userID, string(category), amount.InexactFloat64(), date.String(), userID)
	if err != nil {
		return 0, fmt.Errorf("inserting variable expense: %w", err)
	}
	if err := affectedOne(res, "user", userID); err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading variable expense id: %w", err)
	}

	log.Debug().Int64("expense_id", id).Int64("user_id", userID).
		Str("category", string(category)).Str("amount", amount.String()).
		Str("date", date.String()).
		Msg("variable expense added")
	return id, nil
}

// GetVariableExpense returns a variable expense by id.
func (s *Store) GetVariableExpense(ctx context.Context, id int64) (model.VariableExpense, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+variableColumns+" FROM variable_expenses WHERE id = ?", id)
	e, err := scanVariable(row)
	if isNoRows(err) {
		return model.VariableExpense{}, notFound("variable expense", id)
	}
	if err != nil {
		return model.VariableExpense{}, fmt.Errorf("reading variable expense %d: %w", id, err)
	}
	return e, nil
}

// ListVariableExpenses returns a user's variable expenses, oldest first.
func (s *Store) ListVariableExpenses(ctx context.Context, userID int64) ([]model.VariableExpense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+variableColumns+" FROM variable_expenses WHERE user_id = ? ORDER BY date, id", userID)
	if err != nil {
		return nil, fmt.Errorf("listing variable expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.VariableExpense
	for rows.Next() {
		e, err := scanVariable(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning variable expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UpdateVariableExpense overwrites the category, amount and date of a
// variable expense. A zero date is stored as today.
func (s *Store) UpdateVariableExpense(ctx context.Context, id int64, category model.Category, amount decimal.Decimal, date model.Date) error {
	if err := category.Validate(); err != nil {
		return err
	}
	if err := model.ValidateAmount(amount); err != nil {
		return err
	}
	date = date.OrToday()

	res, err := s.db.ExecContext(ctx,
		"UPDATE variable_expenses SET category = ?, amount = ?, date = ? WHERE id = ?",
		string(category), amount.InexactFloat64(), date.String(), id)
	if err != nil {
		return fmt.Errorf("updating variable expense %d: %w", id, err)
	}
	if err := affectedOne(res, "variable expense", id); err != nil {
		return err
	}

	log.Debug().Int64("expense_id", id).Msg("variable expense updated")
	return nil
}

// DeleteVariableExpense removes a variable expense.
func (s *Store) DeleteVariableExpense(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM variable_expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting variable expense %d: %w", id, err)
	}
	if err := affectedOne(res, "variable expense", id); err != nil {
		return err
	}

	log.Debug().Int64("expense_id", id).Msg("variable expense deleted")
	return nil
}

// SumVariableExpenses returns the unrounded total of a user's variable
// expenses, zero when there are none.
func (s *Store) SumVariableExpenses(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM variable_expenses WHERE user_id = ?", userID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing variable expenses: %w", err)
	}
	return total, nil
}

// SumVariableByCategory returns a user's unrounded variable expense totals
// keyed by category.
func (s *Store) SumVariableByCategory(ctx context.Context, userID int64) (map[model.Category]decimal.Decimal, error) {
	return s.sumByCategory(ctx, "variable_expenses", userID)
}
