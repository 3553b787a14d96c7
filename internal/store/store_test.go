package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/budgie/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	ctx context.Context
	s   *Store
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (suite *StoreTestSuite) SetupTest() {
	suite.ctx = context.Background()

	s, err := Open(filepath.Join(suite.T().TempDir(), "budget.db"))
	require.NoError(suite.T(), err, "opening store")
	require.NoError(suite.T(), s.EnsureSchema(suite.ctx), "migrating store")
	suite.s = s
}

func (suite *StoreTestSuite) TearDownTest() {
	if suite.s != nil {
		_ = suite.s.Close()
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (suite *StoreTestSuite) assertDec(want string, got decimal.Decimal, msgAndArgs ...any) {
	suite.T().Helper()
	if len(msgAndArgs) == 0 {
		msgAndArgs = []any{"want %s, got %s", want, got.String()}
	}
	assert.True(suite.T(), dec(want).Equal(got), msgAndArgs...)
}

func (suite *StoreTestSuite) mustUser(name string, income, pct string) int64 {
	suite.T().Helper()
	id, err := suite.s.CreateUser(suite.ctx, name, dec(income), dec(pct))
	require.NoError(suite.T(), err)
	return id
}

func (suite *StoreTestSuite) TestEnsureSchemaIsIdempotent() {
	require.NoError(suite.T(), suite.s.EnsureSchema(suite.ctx))
	require.NoError(suite.T(), suite.s.EnsureSchema(suite.ctx))
}

func (suite *StoreTestSuite) TestReopenKeepsData() {
	id := suite.mustUser("Ana", "2500", "15")
	path := suite.s.Path()
	require.NoError(suite.T(), suite.s.Close())

	s, err := Open(path)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), s.EnsureSchema(suite.ctx))
	suite.s = s

	u, err := s.GetUser(suite.ctx, id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Ana", u.Name)
}

func (suite *StoreTestSuite) TestUserRoundTrip() {
	id := suite.mustUser("  Ana  ", "2500.50", "15")
	assert.Positive(suite.T(), id)

	u, err := suite.s.GetUser(suite.ctx, id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), id, u.ID)
	assert.Equal(suite.T(), "Ana", u.Name, "name is trimmed")
	suite.assertDec("2500.50", u.Income)
	suite.assertDec("15", u.SavingsPct)
}

func (suite *StoreTestSuite) TestCreateUserValidation() {
	_, err := suite.s.CreateUser(suite.ctx, "   ", dec("100"), dec("10"))
	assert.ErrorIs(suite.T(), err, model.ErrValidation)

	_, err = suite.s.CreateUser(suite.ctx, "Bob", dec("-1"), dec("10"))
	assert.ErrorIs(suite.T(), err, model.ErrValidation)

	users, err := suite.s.ListUsers(suite.ctx)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), users, "rejected users must not be stored")
}

func (suite *StoreTestSuite) TestZeroIncomeIsAllowed() {
	id := suite.mustUser("Zed", "0", "0")
	u, err := suite.s.GetUser(suite.ctx, id)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), u.Income.IsZero())
}

func (suite *StoreTestSuite) TestGetUserNotFound() {
	_, err := suite.s.GetUser(suite.ctx, 999)
	assert.ErrorIs(suite.T(), err, model.ErrNotFound)

	_, err = suite.s.GetUserByName(suite.ctx, "nobody")
	assert.ErrorIs(suite.T(), err, model.ErrNotFound)
}

func (suite *StoreTestSuite) TestGetUserByNamePicksOldest() {
	first := suite.mustUser("Sam", "1000", "5")
	suite.mustUser("Sam", "2000", "5")

	u, err := suite.s.GetUserByName(suite.ctx, " Sam ")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), first, u.ID)
}

func (suite *StoreTestSuite) TestUpdateUser() {
	id := suite.mustUser("Ana", "2500", "15")

	require.NoError(suite.T(), suite.s.UpdateUser(suite.ctx, id, "Ana Maria", dec("3000"), dec("20")))
	// Writing the same values again must not look like a missing row.
	require.NoError(suite.T(), suite.s.UpdateUser(suite.ctx, id, "Ana Maria", dec("3000"), dec("20")))

	u, err := suite.s.GetUser(suite.ctx, id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Ana Maria", u.Name)
	suite.assertDec("3000", u.Income)
	suite.assertDec("20", u.SavingsPct)

	err = suite.s.UpdateUser(suite.ctx, 999, "X", dec("1"), dec("1"))
	assert.ErrorIs(suite.T(), err, model.ErrNotFound)
}

func (suite *StoreTestSuite) TestUpdateSavingsPct() {
	id := suite.mustUser("Ana", "2500", "15")

	require.NoError(suite.T(), suite.s.UpdateSavingsPct(suite.ctx, id, dec("25")))
	u, err := suite.s.GetUser(suite.ctx, id)
	require.NoError(suite.T(), err)
	suite.assertDec("25", u.SavingsPct)
	suite.assertDec("2500", u.Income, "income is untouched")

	assert.ErrorIs(suite.T(), suite.s.UpdateSavingsPct(suite.ctx, 999, dec("1")), model.ErrNotFound)
}

func (suite *StoreTestSuite) TestListUsersInIDOrder() {
	a := suite.mustUser("A", "1", "0")
	b := suite.mustUser("B", "1", "0")
	c := suite.mustUser("C", "1", "0")

	users, err := suite.s.ListUsers(suite.ctx)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), users, 3)
	assert.Equal(suite.T(), []int64{a, b, c}, []int64{users[0].ID, users[1].ID, users[2].ID})
}

func (suite *StoreTestSuite) TestDeleteUserLeavesExpenses() {
	id := suite.mustUser("Ana", "2500", "15")
	expID, err := suite.s.AddFixedExpense(suite.ctx, id, model.Rent, dec("800"))
	require.NoError(suite.T(), err)

	require.NoError(suite.T(), suite.s.DeleteUser(suite.ctx, id))

	_, err = suite.s.GetUser(suite.ctx, id)
	assert.ErrorIs(suite.T(), err, model.ErrNotFound)

	e, err := suite.s.GetFixedExpense(suite.ctx, expID)
	require.NoError(suite.T(), err, "expense survives its user")
	assert.Equal(suite.T(), id, e.UserID)

	assert.ErrorIs(suite.T(), suite.s.DeleteUser(suite.ctx, id), model.ErrNotFound)
}

func (suite *StoreTestSuite) TestFixedExpenseLifecycle() {
	uid := suite.mustUser("Ana", "3000", "10")

	id, err := suite.s.AddFixedExpense(suite.ctx, uid, model.Rent, dec("1200"))
	require.NoError(suite.T(), err)

	e, err := suite.s.GetFixedExpense(suite.ctx, id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), uid, e.UserID)
	assert.Equal(suite.T(), model.Rent, e.Category)
	suite.assertDec("1200", e.Amount)

	require.NoError(suite.T(), suite.s.UpdateFixedExpense(suite.ctx, id, model.Utilities, dec("150.25")))
	require.NoError(suite.T(), suite.s.UpdateFixedExpense(suite.ctx, id, model.Utilities, dec("150.25")))
	e, err = suite.s.GetFixedExpense(suite.ctx, id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), model.Utilities, e.Category)
	suite.assertDec("150.25", e.Amount)

	require.NoError(suite.T(), suite.s.DeleteFixedExpense(suite.ctx, id))
	_, err = suite.s.GetFixedExpense(suite.ctx, id)
	assert.ErrorIs(suite.T(), err, model.ErrNotFound)
	assert.ErrorIs(suite.T(), suite.s.DeleteFixedExpense(suite.ctx, id), model.ErrNotFound)
	assert.ErrorIs(suite.T(), suite.s.UpdateFixedExpense(suite.ctx, id, model.Rent, dec("1")), model.ErrNotFound)
}

func (suite *StoreTestSuite) TestAddExpenseForUnknownUser() {
	_, err := suite.s.AddFixedExpense(suite.ctx, 42, model.Rent, dec("100"))
	assert.ErrorIs(suite.T(), err, model.ErrNotFound)

	_, err = suite.s.AddVariableExpense(suite.ctx, 42, model.Food, dec("10"), model.Date{})
	assert.ErrorIs(suite.T(), err, model.ErrNotFound)

	sum, err := suite.s.SumFixedExpenses(suite.ctx, 42)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), sum.IsZero())
}

func (suite *StoreTestSuite) TestExpenseValidation() {
	uid := suite.mustUser("Ana", "3000", "10")

	_, err := suite.s.AddFixedExpense(suite.ctx, uid, model.Rent, dec("0"))
	assert.ErrorIs(suite.T(), err, model.ErrValidation)
	_, err = suite.s.AddFixedExpense(suite.ctx, uid, model.Category("Travel"), dec("10"))
	assert.ErrorIs(suite.T(), err, model.ErrValidation)
	_, err = suite.s.AddVariableExpense(suite.ctx, uid, model.Food, dec("-5"), model.Date{})
	assert.ErrorIs(suite.T(), err, model.ErrValidation)

	fixed, err := suite.s.ListFixedExpenses(suite.ctx, uid)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), fixed)
	variable, err := suite.s.ListVariableExpenses(suite.ctx, uid)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), variable)
}

func (suite *StoreTestSuite) TestVariableExpenseDefaultsToToday() {
	uid := suite.mustUser("Ana", "3000", "10")
	before := model.Today()

	id, err := suite.s.AddVariableExpense(suite.ctx, uid, model.Food, dec("12.50"), model.Date{})
	require.NoError(suite.T(), err)

	e, err := suite.s.GetVariableExpense(suite.ctx, id)
	require.NoError(suite.T(), err)
	after := model.Today()
	// Tolerate the test running across midnight.
	assert.True(suite.T(), e.Date.Equal(before.Time) || e.Date.Equal(after.Time), "got %s", e.Date)
}

func (suite *StoreTestSuite) TestVariableExpenseLifecycle() {
	uid := suite.mustUser("Ana", "3000", "10")
	jan5 := model.NewDate(2024, time.January, 5)

	id, err := suite.s.AddVariableExpense(suite.ctx, uid, model.Food, dec("2000"), jan5)
	require.NoError(suite.T(), err)

	e, err := suite.s.GetVariableExpense(suite.ctx, id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "2024-01-05", e.Date.String())
	assert.Equal(suite.T(), model.Food, e.Category)

	feb1 := model.NewDate(2024, time.February, 1)
	require.NoError(suite.T(), suite.s.UpdateVariableExpense(suite.ctx, id, model.Health, dec("45.10"), feb1))
	e, err = suite.s.GetVariableExpense(suite.ctx, id)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), model.Health, e.Category)
	assert.Equal(suite.T(), "2024-02-01", e.Date.String())
	suite.assertDec("45.10", e.Amount)

	require.NoError(suite.T(), suite.s.DeleteVariableExpense(suite.ctx, id))
	_, err = suite.s.GetVariableExpense(suite.ctx, id)
	assert.ErrorIs(suite.T(), err, model.ErrNotFound)
	assert.ErrorIs(suite.T(), suite.s.UpdateVariableExpense(suite.ctx, id, model.Food, dec("1"), feb1), model.ErrNotFound)
}

func (suite *StoreTestSuite) TestListVariableExpensesByDate() {
	uid := suite.mustUser("Ana", "3000", "10")

	late, err := suite.s.AddVariableExpense(suite.ctx, uid, model.Food, dec("1"), model.NewDate(2024, time.March, 3))
	require.NoError(suite.T(), err)
	early, err := suite.s.AddVariableExpense(suite.ctx, uid, model.Food, dec("2"), model.NewDate(2024, time.January, 1))
	require.NoError(suite.T(), err)

	list, err := suite.s.ListVariableExpenses(suite.ctx, uid)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), list, 2)
	assert.Equal(suite.T(), early, list[0].ID)
	assert.Equal(suite.T(), late, list[1].ID)
}

func (suite *StoreTestSuite) TestSumsArePerUser() {
	ana := suite.mustUser("Ana", "3000", "10")
	bob := suite.mustUser("Bob", "2000", "5")

	_, err := suite.s.AddFixedExpense(suite.ctx, ana, model.Rent, dec("1200"))
	require.NoError(suite.T(), err)
	rent2, err := suite.s.AddFixedExpense(suite.ctx, ana, model.Utilities, dec("100.50"))
	require.NoError(suite.T(), err)
	_, err = suite.s.AddFixedExpense(suite.ctx, bob, model.Rent, dec("700"))
	require.NoError(suite.T(), err)
	_, err = suite.s.AddVariableExpense(suite.ctx, ana, model.Food, dec("30"), model.NewDate(2024, time.January, 2))
	require.NoError(suite.T(), err)

	sum, err := suite.s.SumFixedExpenses(suite.ctx, ana)
	require.NoError(suite.T(), err)
	suite.assertDec("1300.50", sum)

	require.NoError(suite.T(), suite.s.DeleteFixedExpense(suite.ctx, rent2))
	sum, err = suite.s.SumFixedExpenses(suite.ctx, ana)
	require.NoError(suite.T(), err)
	suite.assertDec("1200", sum)

	require.NoError(suite.T(), suite.s.DeleteUser(suite.ctx, ana))
	sum, err = suite.s.SumFixedExpenses(suite.ctx, bob)
	require.NoError(suite.T(), err)
	suite.assertDec("700", sum, "other users are unaffected")

	vsum, err := suite.s.SumVariableExpenses(suite.ctx, bob)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), vsum.IsZero())
}

func (suite *StoreTestSuite) TestSumByCategory() {
	uid := suite.mustUser("Ana", "3000", "10")

	for _, amt := range []string{"10", "15.5"} {
		_, err := suite.s.AddVariableExpense(suite.ctx, uid, model.Food, dec(amt), model.NewDate(2024, time.January, 1))
		require.NoError(suite.T(), err)
	}
	_, err := suite.s.AddVariableExpense(suite.ctx, uid, model.Transport, dec("4"), model.NewDate(2024, time.January, 1))
	require.NoError(suite.T(), err)
	_, err = suite.s.AddFixedExpense(suite.ctx, uid, model.Rent, dec("900"))
	require.NoError(suite.T(), err)

	variable, err := suite.s.SumVariableByCategory(suite.ctx, uid)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), variable, 2)
	suite.assertDec("25.5", variable[model.Food])
	suite.assertDec("4", variable[model.Transport])

	fixed, err := suite.s.SumFixedByCategory(suite.ctx, uid)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), fixed, 1)
	suite.assertDec("900", fixed[model.Rent])
}
