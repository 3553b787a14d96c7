package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/theirongolddev/budgie/internal/model"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const userColumns = "id, name, income, savings_pct"

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Income, &u.SavingsPct)
	return u, err
}

// CreateUser inserts a user and returns the assigned id.
func (s *Store) CreateUser(ctx context.Context, name string, income, savingsPct decimal.Decimal) (int64, error) {
	name, err := model.NormalizeName(name)
	if err != nil {
		return 0, err
	}
	if err := model.ValidateIncome(income); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (name, income, savings_pct) VALUES (?, ?, ?)",
		name, income.InexactFloat64(), savingsPct.InexactFloat64())
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading user id: %w", err)
	}

	log.Debug().Int64("user_id", id).Str("name", name).Msg("user created")
	return id, nil
}

// GetUser returns the user with the given id.
func (s *Store) GetUser(ctx context.Context, id int64) (model.User, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if isNoRows(err) {
		return model.User{}, notFound("user", id)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("reading user %d: %w", id, err)
	}
	return u, nil
}

// GetUserByName returns the user with the given name. When several users
// share a name the oldest one wins.
func (s *Store) GetUserByName(ctx context.Context, name string) (model.User, error) {
	name = strings.TrimSpace(name)
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE name = ? ORDER BY id LIMIT 1", name)
	u, err := scanUser(row)
	if isNoRows(err) {
		return model.User{}, fmt.Errorf("%w: user %q", model.ErrNotFound, name)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("reading user %q: %w", name, err)
	}
	return u, nil
}

// UpdateUser overwrites every mutable field of a user.
func (s *Store) UpdateUser(ctx context.Context, id int64, name string, income, savingsPct decimal.Decimal) error {
	name, err := model.NormalizeName(name)
	if err != nil {
		return err
	}
	if err := model.ValidateIncome(income); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET name = ?, income = ?, savings_pct = ? WHERE id = ?",
		name, income.InexactFloat64(), savingsPct.InexactFloat64(), id)
	if err != nil {
		return fmt.Errorf("updating user %d: %w", id, err)
	}
	if err := affectedOne(res, "user", id); err != nil {
		return err
	}

	log.Debug().Int64("user_id", id).Msg("user updated")
	return nil
}

// UpdateSavingsPct changes only the savings percentage of a user.
func (s *Store) UpdateSavingsPct(ctx context.Context, id int64, savingsPct decimal.Decimal) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET savings_pct = ? WHERE id = ?", savingsPct.InexactFloat64(), id)
	if err != nil {
		return fmt.Errorf("updating savings of user %d: %w", id, err)
	}
	if err := affectedOne(res, "user", id); err != nil {
		return err
	}

	log.Debug().Int64("user_id", id).Str("savings_pct", savingsPct.String()).Msg("savings updated")
	return nil
}

// DeleteUser removes a user. Its expenses are left untouched.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	if err := affectedOne(res, "user", id); err != nil {
		return err
	}

	log.Debug().Int64("user_id", id).Msg("user deleted")
	return nil
}

// ListUsers returns every user in id order.
func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
