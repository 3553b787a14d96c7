package store

import (
	"context"
	"fmt"

	"github.com/theirongolddev/budgie/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const fixedColumns = "id, user_id, category, amount"

func scanFixed(row rowScanner) (model.FixedExpense, error) {
	var (
		e   model.FixedExpense
		cat string
	)
	if err := row.Scan(&e.ID, &e.UserID, &cat, &e.Amount); err != nil {
		return e, err
	}
	e.Category = model.Category(cat)
	return e, nil
}

// AddFixedExpense records a recurring expense for an existing user and
// returns its id.
func (s *Store) AddFixedExpense(ctx context.Context, userID int64, category model.Category, amount decimal.Decimal) (int64, error) {
	if err := category.Validate(); err != nil {
		return 0, err
	}
	if err := model.ValidateAmount(amount); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO fixed_expenses (user_id, category, amount)
		SELECT ?, ?, ? WHERE EXISTS (SELECT 1 FROM users WHERE id = ?)`,
		userID, string(category), amount.InexactFloat64(), userID)
	if err != nil {
		return 0, fmt.Errorf("inserting fixed expense: %w", err)
	}
	if err := affectedOne(res, "user", userID); err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading fixed expense id: %w", err)
	}

	log.Debug().Int64("expense_id", id).Int64("user_id", userID).
		Str("category", string(category)).Str("amount", amount.String()).
		Msg("fixed expense added")
	return id, nil
}

// GetFixedExpense returns a fixed expense by id, whether or not its user
// still exists.
func (s *Store) GetFixedExpense(ctx context.Context, id int64) (model.FixedExpense, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+fixedColumns+" FROM fixed_expenses WHERE id = ?", id)
	e, err := scanFixed(row)
	if isNoRows(err) {
		return model.FixedExpense{}, notFound("fixed expense", id)
	}
	if err != nil {
		return model.FixedExpense{}, fmt.Errorf("reading fixed expense %d: %w", id, err)
	}
	return e, nil
}

// ListFixedExpenses returns a user's fixed expenses in id order.
func (s *Store) ListFixedExpenses(ctx context.Context, userID int64) ([]model.FixedExpense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+fixedColumns+" FROM fixed_expenses WHERE user_id = ? ORDER BY id", userID)
	if err != nil {
		return nil, fmt.Errorf("listing fixed expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.FixedExpense
	for rows.Next() {
		e, err := scanFixed(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning fixed expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// UpdateFixedExpense overwrites the category and amount of a fixed expense.
func (s *Store) UpdateFixedExpense(ctx context.Context, id int64, category model.Category, amount decimal.Decimal) error {
	if err := category.Validate(); err != nil {
		return err
	}
	if err := model.ValidateAmount(amount); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE fixed_expenses SET category = ?, amount = ? WHERE id = ?",
		string(category), amount.InexactFloat64(), id)
	if err != nil {
		return fmt.Errorf("updating fixed expense %d: %w", id, err)
	}
	if err := affectedOne(res, "fixed expense", id); err != nil {
		return err
	}

	log.Debug().Int64("expense_id", id).Msg("fixed expense updated")
	return nil
}

// DeleteFixedExpense removes a fixed expense.
func (s *Store) DeleteFixedExpense(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM fixed_expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting fixed expense %d: %w", id, err)
	}
	if err := affectedOne(res, "fixed expense", id); err != nil {
		return err
	}

	log.Debug().Int64("expense_id", id).Msg("fixed expense deleted")
	return nil
}

// SumFixedExpenses returns the unrounded total of a user's fixed expenses,
// zero when there are none.
func (s *Store) SumFixedExpenses(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM fixed_expenses WHERE user_id = ?", userID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing fixed expenses: %w", err)
	}
	return total, nil
}

// SumFixedByCategory returns a user's unrounded fixed expense totals keyed
// by category. Categories without expenses are absent.
func (s *Store) SumFixedByCategory(ctx context.Context, userID int64) (map[model.Category]decimal.Decimal, error) {
	return s.sumByCategory(ctx, "fixed_expenses", userID)
}

// sumByCategory groups one expense table by category. table is always a
// package constant, never user input.
func (s *Store) sumByCategory(ctx context.Context, table string, userID int64) (map[model.Category]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT category, COALESCE(SUM(amount), 0) FROM "+table+" WHERE user_id = ? GROUP BY category", userID)
	if err != nil {
		return nil, fmt.Errorf("summing %s by category: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	totals := make(map[model.Category]decimal.Decimal)
	for rows.Next() {
		var (
			cat   string
			total decimal.Decimal
		)
		if err := rows.Scan(&cat, &total); err != nil {
			return nil, fmt.Errorf("scanning %s total: %w", table, err)
		}
		totals[model.Category(cat)] = total
	}
	return totals, rows.Err()
}
