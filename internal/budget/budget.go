// Package budget derives a user's savings, totals and remaining budget from
// their income, savings percentage and expense sums.
//
// Every formula rounds its own result to cents exactly once, half away from
// zero. Inputs to a formula may already be rounded results of another one.
package budget

import (
	"context"
	"fmt"

	"github.com/theirongolddev/budgie/internal/model"

	"github.com/shopspring/decimal"
)

const places = 2

var hundred = decimal.NewFromInt(100)

// CalcSavings returns the amount set aside from income at pct percent.
func CalcSavings(income, pct decimal.Decimal) decimal.Decimal {
	return income.Mul(pct).Div(hundred).Round(places)
}

// Disposable is what remains of income after savings and expenses. It is
// negative when the user overspends.
func Disposable(income, savings, fixed, variable decimal.Decimal) decimal.Decimal {
	return income.Sub(savings).Sub(fixed).Sub(variable).Round(places)
}

// Committed is the part of income already spoken for.
func Committed(savings, fixed, variable decimal.Decimal) decimal.Decimal {
	return savings.Add(fixed).Add(variable).Round(places)
}

// UsageRatio is committed as a whole percentage of income, floored and
// capped at 100. It is 0 when income is not positive.
func UsageRatio(income, committed decimal.Decimal) int {
	if !income.IsPositive() {
		return 0
	}
	pct := committed.Mul(hundred).Div(income).Floor().IntPart()
	if pct > 100 {
		return 100
	}
	return int(pct)
}

// IsOverCommitted reports whether more than the whole income is committed.
func IsOverCommitted(income, committed decimal.Decimal) bool {
	return committed.GreaterThan(income)
}

// Summary is the derived budget of one user at one point in time.
type Summary struct {
	User          model.User
	Savings       decimal.Decimal
	TotalFixed    decimal.Decimal
	TotalVariable decimal.Decimal
	Disposable    decimal.Decimal
	Committed     decimal.Decimal
	UsageRatio    int
	OverCommitted bool
}

// Compute derives a Summary from a user and the raw sums of their fixed and
// variable expenses.
func Compute(u model.User, fixedSum, variableSum decimal.Decimal) Summary {
	s := Summary{
		User:          u,
		Savings:       CalcSavings(u.Income, u.SavingsPct),
		TotalFixed:    fixedSum.Round(places),
		TotalVariable: variableSum.Round(places),
	}
	s.Disposable = Disposable(u.Income, s.Savings, s.TotalFixed, s.TotalVariable)
	s.Committed = Committed(s.Savings, s.TotalFixed, s.TotalVariable)
	s.UsageRatio = UsageRatio(u.Income, s.Committed)
	s.OverCommitted = IsOverCommitted(u.Income, s.Committed)
	return s
}

// Aggregator is the read side of the record store the engine needs.
type Aggregator interface {
	GetUser(ctx context.Context, id int64) (model.User, error)
	SumFixedExpenses(ctx context.Context, userID int64) (decimal.Decimal, error)
	SumVariableExpenses(ctx context.Context, userID int64) (decimal.Decimal, error)
}

// CategoryAggregator additionally groups sums by category.
type CategoryAggregator interface {
	SumFixedByCategory(ctx context.Context, userID int64) (map[model.Category]decimal.Decimal, error)
	SumVariableByCategory(ctx context.Context, userID int64) (map[model.Category]decimal.Decimal, error)
}

// Engine computes budgets from stored data. It holds no state of its own:
// every call reads a fresh snapshot.
type Engine struct {
	agg Aggregator
}

// New returns an Engine reading from agg.
func New(agg Aggregator) *Engine {
	return &Engine{agg: agg}
}

// TotalFixed returns the rounded sum of a user's fixed expenses.
func (e *Engine) TotalFixed(ctx context.Context, userID int64) (decimal.Decimal, error) {
	sum, err := e.agg.SumFixedExpenses(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return sum.Round(places), nil
}

// TotalVariable returns the rounded sum of a user's variable expenses.
func (e *Engine) TotalVariable(ctx context.Context, userID int64) (decimal.Decimal, error) {
	sum, err := e.agg.SumVariableExpenses(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return sum.Round(places), nil
}

// Summarize reads the user and both expense sums and derives the budget.
func (e *Engine) Summarize(ctx context.Context, userID int64) (Summary, error) {
	u, err := e.agg.GetUser(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	fixed, err := e.agg.SumFixedExpenses(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	variable, err := e.agg.SumVariableExpenses(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Compute(u, fixed, variable), nil
}

// CategoryTotal is the spend of one category split by expense kind.
type CategoryTotal struct {
	Category model.Category
	Fixed    decimal.Decimal
	Variable decimal.Decimal
	Total    decimal.Decimal
}

// Breakdown returns per-category totals in category order. Categories the
// user has not spent on are omitted. The engine's aggregator must also
// implement CategoryAggregator.
func (e *Engine) Breakdown(ctx context.Context, userID int64) ([]CategoryTotal, error) {
	ca, ok := e.agg.(CategoryAggregator)
	if !ok {
		return nil, fmt.Errorf("category totals not supported by %T", e.agg)
	}

	fixed, err := ca.SumFixedByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	variable, err := ca.SumVariableByCategory(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mergeCategories(fixed, variable), nil
}

func mergeCategories(fixed, variable map[model.Category]decimal.Decimal) []CategoryTotal {
	var out []CategoryTotal
	for _, c := range model.Categories {
		f, v := fixed[c], variable[c]
		total := f.Add(v).Round(places)
		if total.IsZero() {
			continue
		}
		out = append(out, CategoryTotal{
			Category: c,
			Fixed:    f.Round(places),
			Variable: v.Round(places),
			Total:    total,
		})
	}
	return out
}
