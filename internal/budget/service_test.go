package budget

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moneta-dev/moneta/internal/model"
	"github.com/moneta-dev/moneta/internal/store"
)

type fixture struct {
	store   *store.Store
	svc     *Service
	budget  model.Budget
	account model.Account
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// newFixture builds a monthly budget anchored January 2024 with the
// clock frozen at 2024-02-10.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()

	f := &fixture{store: s}
	f.account = model.Account{ID: uuid.NewString(), Name: "Checking", Type: model.AccountTypeChecking}
	require.NoError(t, s.CreateAccount(ctx, f.account))

	f.budget = model.Budget{
		ID: uuid.NewString(), Name: "Household", PeriodType: model.PeriodMonthly,
		StartDate: day(2024, time.January, 1), CreatedAt: time.Now(),
	}
	require.NoError(t, s.CreateBudget(ctx, f.budget))

	f.svc = NewService(s, zerolog.Nop())
	f.svc.now = func() time.Time { return day(2024, time.February, 10) }
	return f
}

func (f *fixture) category(t *testing.T, name string) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, f.store.CreateCategory(context.Background(), model.Category{ID: id, Name: name}))
	return id
}

func (f *fixture) allocate(t *testing.T, categoryID, amount string, rollover bool) {
	t.Helper()
	require.NoError(t, f.store.UpsertAllocation(context.Background(), model.BudgetAllocation{
		BudgetID: f.budget.ID, CategoryID: categoryID,
		Amount: decimal.RequireFromString(amount), Rollover: rollover,
	}))
}

func (f *fixture) spend(t *testing.T, categoryID string, date time.Time, amount string) {
	t.Helper()
	require.NoError(t, f.store.InsertTransaction(context.Background(), model.Transaction{
		ID: uuid.NewString(), AccountID: f.account.ID, Date: date,
		Description: "txn", Amount: decimal.RequireFromString(amount),
		CategoryID: categoryID, ImportHash: uuid.NewString()[:16],
	}))
}

func TestGetOrCreatePeriod_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p1, err := f.svc.GetOrCreatePeriod(ctx, f.budget.ID)
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.February, 1), p1.StartDate)
	assert.Equal(t, day(2024, time.February, 29), p1.EndDate)
	assert.Equal(t, model.PeriodOpen, p1.Status)

	p2, err := f.svc.GetOrCreatePeriod(ctx, f.budget.ID)
	require.NoError(t, err)
	assert.Equal(t, p1.ID, p2.ID)
}

func TestGetOrCreatePeriod_BudgetNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.GetOrCreatePeriod(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRollovers_SignAndEligibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	under := f.category(t, "Groceries")
	over := f.category(t, "Dining")
	noRoll := f.category(t, "Fun")
	f.allocate(t, under, "200", true)
	f.allocate(t, over, "200", true)
	f.allocate(t, noRoll, "100", false)

	// February mirrors back to January 3 through 31.
	f.spend(t, under, day(2024, time.January, 15), "-150.00")
	f.spend(t, over, day(2024, time.January, 15), "-250.00")
	f.spend(t, noRoll, day(2024, time.January, 15), "-500.00")

	rolls, err := f.svc.Rollovers(ctx, f.budget.ID, day(2024, time.February, 1), day(2024, time.February, 29))
	require.NoError(t, err)
	require.Len(t, rolls, 2)

	assert.Equal(t, "50", rolls[under].Amount.String())
	assert.Equal(t, "150", rolls[under].PreviousSpent.String())
	assert.Equal(t, "-50", rolls[over].Amount.String())
	_, ok := rolls[noRoll]
	assert.False(t, ok)
}

func TestRollovers_PreviousWindowExcludesOlderSpend(t *testing.T) {
	f := newFixture(t)
	cat := f.category(t, "Groceries")
	f.allocate(t, cat, "100", true)

	// January 1 and 2 fall outside the mirrored 29-day window.
	f.spend(t, cat, day(2024, time.January, 2), "-80.00")
	f.spend(t, cat, day(2024, time.January, 3), "-20.00")

	rolls, err := f.svc.Rollovers(context.Background(), f.budget.ID,
		day(2024, time.February, 1), day(2024, time.February, 29))
	require.NoError(t, err)
	assert.Equal(t, "80", rolls[cat].Amount.String())
}

func TestVsActual_EffectiveAllocationAndBands(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	groceries := f.category(t, "Groceries")
	dining := f.category(t, "Dining")
	f.allocate(t, groceries, "200", true)
	f.allocate(t, dining, "100", false)

	f.spend(t, groceries, day(2024, time.January, 15), "-150.00")
	f.spend(t, groceries, day(2024, time.February, 5), "-60.00")
	f.spend(t, dining, day(2024, time.February, 8), "-90.00")
	// Income in the category never offsets spend.
	f.spend(t, dining, day(2024, time.February, 9), "25.00")

	actuals, err := f.svc.VsActual(ctx, f.budget.ID, day(2024, time.February, 1), day(2024, time.February, 29))
	require.NoError(t, err)
	require.Len(t, actuals, 2)

	byID := map[string]CategoryActual{}
	for _, a := range actuals {
		byID[a.CategoryID] = a
	}

	g := byID[groceries]
	assert.Equal(t, "Groceries", g.CategoryName)
	assert.Equal(t, "50", g.Rollover.String())
	assert.Equal(t, "60", g.Spent.String())
	assert.Equal(t, "190", g.Remaining.String())
	assert.Equal(t, "24", g.PercentUsed.String())
	assert.Equal(t, StatusUnder, g.Status)

	d := byID[dining]
	assert.True(t, d.Rollover.IsZero())
	assert.Equal(t, "90", d.PercentUsed.String())
	assert.Equal(t, StatusWarning, d.Status)
}

func TestVsActual_ZeroAllocationEdges(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	idle := f.category(t, "Idle")
	burned := f.category(t, "Burned")
	f.allocate(t, idle, "0", false)
	f.allocate(t, burned, "0", false)
	f.spend(t, burned, day(2024, time.February, 5), "-30.00")

	actuals, err := f.svc.VsActual(ctx, f.budget.ID, day(2024, time.February, 1), day(2024, time.February, 29))
	require.NoError(t, err)

	byID := map[string]CategoryActual{}
	for _, a := range actuals {
		byID[a.CategoryID] = a
	}
	assert.True(t, byID[idle].PercentUsed.IsZero())
	assert.Equal(t, StatusUnder, byID[idle].Status)
	assert.Equal(t, "100", byID[burned].PercentUsed.String())
	assert.Equal(t, StatusOver, byID[burned].Status)
}

func TestVsActual_OverspendExactBoundary(t *testing.T) {
	f := newFixture(t)
	cat := f.category(t, "Dining")
	f.allocate(t, cat, "100", false)
	f.spend(t, cat, day(2024, time.February, 5), "-100.00")

	actuals, err := f.svc.VsActual(context.Background(), f.budget.ID,
		day(2024, time.February, 1), day(2024, time.February, 29))
	require.NoError(t, err)
	require.Len(t, actuals, 1)

	// Exactly 100 percent is warning, not over.
	assert.Equal(t, "100", actuals[0].PercentUsed.String())
	assert.Equal(t, StatusWarning, actuals[0].Status)
}

func TestVsActual_BudgetNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.VsActual(context.Background(), "missing",
		day(2024, time.February, 1), day(2024, time.February, 29))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStatus_AggregatesCurrentPeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	groceries := f.category(t, "Groceries")
	dining := f.category(t, "Dining")
	travel := f.category(t, "Travel")
	f.allocate(t, groceries, "200", true)
	f.allocate(t, dining, "100", false)
	f.allocate(t, travel, "50", false)

	f.spend(t, groceries, day(2024, time.January, 15), "-150.00")
	f.spend(t, groceries, day(2024, time.February, 5), "-60.00")
	f.spend(t, dining, day(2024, time.February, 8), "-90.00")
	f.spend(t, travel, day(2024, time.February, 3), "-75.00")

	st, err := f.svc.Status(ctx, f.budget.ID)
	require.NoError(t, err)

	assert.Equal(t, "Household", st.BudgetName)
	assert.Equal(t, day(2024, time.February, 1), st.PeriodStart)
	assert.Equal(t, day(2024, time.February, 29), st.PeriodEnd)
	require.Len(t, st.Categories, 3)

	// 250 effective groceries + 100 dining + 50 travel.
	assert.Equal(t, "400", st.TotalAllocated.String())
	assert.Equal(t, "225", st.TotalSpent.String())
	assert.Equal(t, "175", st.TotalRemaining.String())
	assert.Equal(t, []string{"Travel"}, st.OverBudget)
	assert.Equal(t, []string{"Dining"}, st.Warnings)

	// February 10 through 29 inclusive.
	assert.Equal(t, 20, st.DaysRemaining)
	assert.Equal(t, "8.75", st.DailyBudgetRemaining.StringFixed(2))
}

func TestStatus_NoAllocations(t *testing.T) {
	f := newFixture(t)
	st, err := f.svc.Status(context.Background(), f.budget.ID)
	require.NoError(t, err)
	assert.Empty(t, st.Categories)
	assert.True(t, st.TotalAllocated.IsZero())
	assert.True(t, st.DailyBudgetRemaining.IsZero())
}
