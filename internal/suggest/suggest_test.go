package suggest

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
	account string
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// newFixture freezes the clock at 2024-04-10, so the three trailing
// complete months are January through March 2024.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	acct := model.Account{ID: uuid.NewString(), Name: "Checking", Type: model.AccountTypeChecking}
	require.NoError(t, s.CreateAccount(context.Background(), acct))

	svc := NewService(s, zerolog.Nop())
	svc.now = func() time.Time { return day(2024, time.April, 10) }
	return &fixture{store: s, svc: svc, account: acct.ID}
}

func (f *fixture) category(t *testing.T, name string, income bool) string {
	t.Helper()
	id := uuid.NewString()
	require.NoError(t, f.store.CreateCategory(context.Background(), model.Category{
		ID: id, Name: name, IsIncome: income,
	}))
	return id
}

func (f *fixture) spend(t *testing.T, categoryID string, date time.Time, amount string) {
	t.Helper()
	require.NoError(t, f.store.InsertTransaction(context.Background(), model.Transaction{
		ID: uuid.NewString(), AccountID: f.account, Date: date,
		Description: "txn", Amount: decimal.RequireFromString(amount),
		CategoryID: categoryID, ImportHash: uuid.NewString()[:16],
	}))
}

func TestSuggest_ThreeMonthAverage(t *testing.T) {
	f := newFixture(t)
	cat := f.category(t, "Groceries", false)

	// 30, 0, 60 over the three lookback months.
	f.spend(t, cat, day(2024, time.January, 15), "-30.00")
	f.spend(t, cat, day(2024, time.March, 20), "-60.00")

	got, err := f.svc.Suggest(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "30.00", got[0].HistoricalAvg.StringFixed(2))
	assert.Equal(t, "30", got[0].SuggestedAmount.String())
	assert.Equal(t, "3-month average", got[0].BasedOn)
}

func TestSuggest_ExcludesCurrentMonthAndOlderSpend(t *testing.T) {
	f := newFixture(t)
	cat := f.category(t, "Groceries", false)

	f.spend(t, cat, day(2023, time.December, 31), "-900.00") // before window
	f.spend(t, cat, day(2024, time.April, 5), "-900.00")     // in-progress month
	f.spend(t, cat, day(2024, time.February, 10), "-90.00")

	got, err := f.svc.Suggest(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "30.00", got[0].HistoricalAvg.StringFixed(2))
}

func TestSuggest_RoundsToNearestFive(t *testing.T) {
	f := newFixture(t)
	cat := f.category(t, "Dining", false)

	// Average 42.50 rounds up to 45.
	f.spend(t, cat, day(2024, time.January, 5), "-127.50")

	got, err := f.svc.Suggest(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "42.50", got[0].HistoricalAvg.StringFixed(2))
	assert.Equal(t, "45", got[0].SuggestedAmount.String())
}

func TestSuggest_DropsBelowFloorAndIncome(t *testing.T) {
	f := newFixture(t)
	tiny := f.category(t, "Vending", false)
	salary := f.category(t, "Salary", true)

	f.spend(t, tiny, day(2024, time.February, 1), "-9.00") // avg 3, under floor
	f.spend(t, salary, day(2024, time.February, 1), "-600.00")

	got, err := f.svc.Suggest(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSuggest_SortsByDescendingAverage(t *testing.T) {
	f := newFixture(t)
	small := f.category(t, "Dining", false)
	big := f.category(t, "Rent", false)

	f.spend(t, small, day(2024, time.February, 1), "-90.00")
	f.spend(t, big, day(2024, time.February, 1), "-3000.00")

	got, err := f.svc.Suggest(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Rent", got[0].CategoryName)
	assert.Equal(t, "Dining", got[1].CategoryName)
}

func TestSuggest_LastMonthLabelAndDefault(t *testing.T) {
	f := newFixture(t)
	cat := f.category(t, "Groceries", false)
	f.spend(t, cat, day(2024, time.March, 10), "-80.00")

	got, err := f.svc.Suggest(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "last month", got[0].BasedOn)
	assert.Equal(t, "80", got[0].SuggestedAmount.String())

	// Zero months falls back to the default window.
	got, err = f.svc.Suggest(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "3-month average", got[0].BasedOn)
}
