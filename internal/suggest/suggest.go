// Package suggest derives budget allocation suggestions from
// historical spending.
package suggest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/moneta-dev/moneta/internal/model"
	"github.com/moneta-dev/moneta/internal/store"
)

// Store is the slice of the ledger the engine reads.
type Store interface {
	ListTransactions(ctx context.Context, f store.TransactionFilter) ([]model.Transaction, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// DefaultMonths is the lookback window when the caller passes none.
const DefaultMonths = 3

// Defaults for the suggestion heuristics. Categories averaging under
// the floor are not worth budgeting; suggestions round to the nearest
// rounding step for human-friendly numbers.
var (
	DefaultFloor   = decimal.NewFromInt(10)
	DefaultRoundTo = decimal.NewFromInt(5)
)

// Suggestion is a proposed allocation for one expense category.
type Suggestion struct {
	CategoryID      string
	CategoryName    string
	SuggestedAmount decimal.Decimal
	HistoricalAvg   decimal.Decimal
	BasedOn         string
}

// Service computes suggestions. Floor and RoundTo default to
// DefaultFloor and DefaultRoundTo; now is injectable for tests.
type Service struct {
	store   Store
	log     zerolog.Logger
	now     func() time.Time
	Floor   decimal.Decimal
	RoundTo decimal.Decimal
}

// NewService creates a suggestion service backed by s.
func NewService(s Store, log zerolog.Logger) *Service {
	return &Service{
		store:   s,
		log:     log,
		now:     time.Now,
		Floor:   DefaultFloor,
		RoundTo: DefaultRoundTo,
	}
}

// Suggest averages spending per expense category over the trailing
// months complete calendar months, excluding the in-progress one, and
// proposes a rounded allocation for each category above the floor.
// Results sort by descending historical average.
func (s *Service) Suggest(ctx context.Context, months int) ([]Suggestion, error) {
	if months <= 0 {
		months = DefaultMonths
	}

	now := s.now()
	firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	start := firstOfCurrent.AddDate(0, -months, 0)
	end := firstOfCurrent.AddDate(0, 0, -1)

	cats, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	basedOn := fmt.Sprintf("%d-month average", months)
	if months == 1 {
		basedOn = "last month"
	}
	n := decimal.NewFromInt(int64(months))

	var out []Suggestion
	for _, c := range cats {
		if c.IsIncome {
			continue
		}
		total, err := s.spent(ctx, c.ID, start, end)
		if err != nil {
			return nil, err
		}
		avg := total.Div(n).Round(2)
		if avg.LessThan(s.Floor) {
			continue
		}
		out = append(out, Suggestion{
			CategoryID:      c.ID,
			CategoryName:    c.Name,
			SuggestedAmount: s.roundToStep(avg),
			HistoricalAvg:   avg,
			BasedOn:         basedOn,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].HistoricalAvg.GreaterThan(out[j].HistoricalAvg)
	})
	s.log.Debug().
		Int("months", months).
		Int("suggestions", len(out)).
		Msg("computed allocation suggestions")
	return out, nil
}

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

// roundToStep rounds to the nearest multiple of RoundTo.
func (s *Service) roundToStep(v decimal.Decimal) decimal.Decimal {
	if !s.RoundTo.IsPositive() {
		return v
	}
	return v.Div(s.RoundTo).Round(0).Mul(s.RoundTo)
}
