// Package budget computes periods, rollovers, and plan-vs-actual
// reports against the ledger.
package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/moneta-dev/moneta/internal/model"
	"github.com/moneta-dev/moneta/internal/period"
	"github.com/moneta-dev/moneta/internal/store"
)

// Store is the slice of the ledger the budget engine reads and writes.
type Store interface {
	GetBudget(ctx context.Context, id string) (model.Budget, error)
	ListAllocations(ctx context.Context, budgetID string) ([]model.BudgetAllocation, error)
	GetPeriod(ctx context.Context, budgetID string, start time.Time) (model.BudgetPeriod, error)
	CreatePeriod(ctx context.Context, p model.BudgetPeriod) error
	ListTransactions(ctx context.Context, f store.TransactionFilter) ([]model.Transaction, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// Service runs budget computations. All date math is in whole local
// calendar days; now is injectable for tests.
type Service struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewService creates a budget service backed by s.
func NewService(s Store, log zerolog.Logger) *Service {
	return &Service{store: s, log: log, now: time.Now}
}

// GetOrCreatePeriod returns the budget's current period row,
// materializing it on first call. Repeated calls within the same
// period return the same row.
func (s *Service) GetOrCreatePeriod(ctx context.Context, budgetID string) (model.BudgetPeriod, error) {
	b, err := s.store.GetBudget(ctx, budgetID)
	if err != nil {
		return model.BudgetPeriod{}, err
	}

	start, end := period.CurrentRange(b.PeriodType, b.StartDate, s.now())
	p, err := s.store.GetPeriod(ctx, b.ID, start)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return model.BudgetPeriod{}, err
	}

	p = model.BudgetPeriod{
		ID:        uuid.NewString(),
		BudgetID:  b.ID,
		StartDate: start,
		EndDate:   end,
		Status:    model.PeriodOpen,
	}
	if err := s.store.CreatePeriod(ctx, p); err != nil {
		return model.BudgetPeriod{}, err
	}
	s.log.Debug().
		Str("budget", b.ID).
		Str("start", start.Format("2006-01-02")).
		Msg("materialized budget period")
	return p, nil
}

// Rollover is the carry from one period into the next for a category.
// Amount is negative when the category overspent.
type Rollover struct {
	CategoryID        string
	PreviousAllocated decimal.Decimal
	PreviousSpent     decimal.Decimal
	Amount            decimal.Decimal
}

// Rollovers computes per-category carry into the period starting at
// periodStart, for every allocation with the rollover flag set. The
// prior window mirrors the period's length backward from its start, so
// rollover works even for periods never materialized as rows.
func (s *Service) Rollovers(ctx context.Context, budgetID string, periodStart, periodEnd time.Time) (map[string]Rollover, error) {
	allocs, err := s.store.ListAllocations(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	prevStart, prevEnd := period.PreviousRange(periodStart, periodEnd)
	out := make(map[string]Rollover)
	for _, a := range allocs {
		if !a.Rollover {
			continue
		}
		spent, err := s.spent(ctx, a.CategoryID, prevStart, prevEnd)
		if err != nil {
			return nil, err
		}
		out[a.CategoryID] = Rollover{
			CategoryID:        a.CategoryID,
			PreviousAllocated: a.Amount,
			PreviousSpent:     spent,
			Amount:            a.Amount.Sub(spent),
		}
	}
	return out, nil
}

// Category status bands.
const (
	StatusUnder   = "under"
	StatusWarning = "warning"
	StatusOver    = "over"
)

// warningThreshold is the percent-used floor of the warning band.
var warningThreshold = decimal.NewFromInt(80)

// CategoryActual compares one category's plan against its spending for
// a period. Effective allocation is Allocated plus Rollover.
type CategoryActual struct {
	CategoryID   string
	CategoryName string
	Allocated    decimal.Decimal
	Rollover     decimal.Decimal
	Spent        decimal.Decimal
	Remaining    decimal.Decimal
	PercentUsed  decimal.Decimal
	Status       string
}

// VsActual reports plan versus actual for every allocation in the
// budget over the inclusive date range.
func (s *Service) VsActual(ctx context.Context, budgetID string, periodStart, periodEnd time.Time) ([]CategoryActual, error) {
	if _, err := s.store.GetBudget(ctx, budgetID); err != nil {
		return nil, err
	}
	allocs, err := s.store.ListAllocations(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	rollovers, err := s.Rollovers(ctx, budgetID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	names, err := s.categoryNames(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CategoryActual, 0, len(allocs))
	for _, a := range allocs {
		rollover := decimal.Zero
		if r, ok := rollovers[a.CategoryID]; ok {
			rollover = r.Amount
		}
		spent, err := s.spent(ctx, a.CategoryID, periodStart, periodEnd)
		if err != nil {
			return nil, err
		}

		effective := a.Amount.Add(rollover)
		percent, status := classify(effective, spent)
		out = append(out, CategoryActual{
			CategoryID:   a.CategoryID,
			CategoryName: names[a.CategoryID],
			Allocated:    a.Amount,
			Rollover:     rollover,
			Spent:        spent,
			Remaining:    effective.Sub(spent),
			PercentUsed:  percent,
			Status:       status,
		})
	}
	return out, nil
}

// BudgetStatus aggregates a budget's current period across categories.
type BudgetStatus struct {
	BudgetID             string
	BudgetName           string
	PeriodStart          time.Time
	PeriodEnd            time.Time
	Categories           []CategoryActual
	TotalAllocated       decimal.Decimal
	TotalSpent           decimal.Decimal
	TotalRemaining       decimal.Decimal
	OverBudget           []string
	Warnings             []string
	DaysRemaining        int
	DailyBudgetRemaining decimal.Decimal
}

// Status reports the budget's current period: per-category vs-actual
// plus totals, over and warning category names, and the daily spend
// rate that would land exactly on budget.
func (s *Service) Status(ctx context.Context, budgetID string) (BudgetStatus, error) {
	b, err := s.store.GetBudget(ctx, budgetID)
	if err != nil {
		return BudgetStatus{}, err
	}
	p, err := s.GetOrCreatePeriod(ctx, budgetID)
	if err != nil {
		return BudgetStatus{}, err
	}
	cats, err := s.VsActual(ctx, budgetID, p.StartDate, p.EndDate)
	if err != nil {
		return BudgetStatus{}, err
	}

	st := BudgetStatus{
		BudgetID:       b.ID,
		BudgetName:     b.Name,
		PeriodStart:    p.StartDate,
		PeriodEnd:      p.EndDate,
		Categories:     cats,
		TotalAllocated: decimal.Zero,
		TotalSpent:     decimal.Zero,
	}
	for _, c := range cats {
		st.TotalAllocated = st.TotalAllocated.Add(c.Allocated).Add(c.Rollover)
		st.TotalSpent = st.TotalSpent.Add(c.Spent)
		switch c.Status {
		case StatusOver:
			st.OverBudget = append(st.OverBudget, c.CategoryName)
		case StatusWarning:
			st.Warnings = append(st.Warnings, c.CategoryName)
		}
	}
	st.TotalRemaining = st.TotalAllocated.Sub(st.TotalSpent)

	today := period.Day(s.now())
	if !today.After(p.EndDate) {
		st.DaysRemaining = period.Days(today, p.EndDate)
	}
	st.DailyBudgetRemaining = decimal.Zero
	if st.DaysRemaining > 0 {
		st.DailyBudgetRemaining = st.TotalRemaining.
			Div(decimal.NewFromInt(int64(st.DaysRemaining))).Round(2)
	}
	return st, nil
}

// spent sums the absolute value of negative transactions in the
// category over the inclusive range. Income rows do not offset spend.
func (s *Service) spent(ctx context.Context, categoryID string, from, to time.Time) (decimal.Decimal, error) {
	txns, err := s.store.ListTransactions(ctx, store.TransactionFilter{
		CategoryID: categoryID,
		From:       from,
		To:         to,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("listing transactions: %w", err)
	}
	total := decimal.Zero
	for _, t := range txns {
		if t.Amount.IsNegative() {
			total = total.Add(t.Amount.Abs())
		}
	}
	return total, nil
}

func (s *Service) categoryNames(ctx context.Context) (map[string]string, error) {
	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return names, nil
}

// classify returns percent used (rounded to 2 places) and the status
// band. A zero or negative effective allocation with any spend counts
// as fully over, not a division by zero.
func classify(effective, spent decimal.Decimal) (decimal.Decimal, string) {
	if !effective.IsPositive() {
		if spent.IsPositive() {
			return decimal.NewFromInt(100), StatusOver
		}
		return decimal.Zero, StatusUnder
	}

	percent := spent.Div(effective).Mul(decimal.NewFromInt(100)).Round(2)
	switch {
	case spent.GreaterThan(effective):
		return percent, StatusOver
	case percent.GreaterThanOrEqual(warningThreshold):
		return percent, StatusWarning
	default:
		return percent, StatusUnder
	}
}
