// Package model defines the records tracked by budgie: users, their fixed
// monthly expenses and their dated variable expenses.
package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// User holds a person's monthly income and the share of it they want to save.
// SavingsPct is conceptually 0-100 but is not range checked.
type User struct {
	ID         int64
	Name       string
	Income     decimal.Decimal
	SavingsPct decimal.Decimal
}

// FixedExpense is a recurring monthly obligation with no date.
type FixedExpense struct {
	ID       int64
	UserID   int64
	Category Category
	Amount   decimal.Decimal
}

// VariableExpense is a one-off expense on a given calendar day.
type VariableExpense struct {
	ID       int64
	UserID   int64
	Category Category
	Amount   decimal.Decimal
	Date     Date
}

// NormalizeName trims the name and rejects empty values.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: user name must not be empty", ErrValidation)
	}
	return name, nil
}

// ValidateIncome rejects negative incomes.
func ValidateIncome(income decimal.Decimal) error {
	if income.IsNegative() {
		return fmt.Errorf("%w: income must not be negative, got %s", ErrValidation, income)
	}
	return nil
}

// ValidateAmount rejects zero and negative expense amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero, got %s", ErrValidation, amount)
	}
	return nil
}
