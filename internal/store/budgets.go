package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneta-dev/moneta/internal/model"
)

const timestampFormat = time.RFC3339

// CreateBudget inserts a budget.
func (s *Store) CreateBudget(ctx context.Context, b model.Budget) error {
	if !model.ValidPeriodType(b.PeriodType) {
		return fmt.Errorf("invalid period type %q", b.PeriodType)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (id, name, period_type, start_date, created_at) VALUES (?, ?, ?, ?, ?)`,
		b.ID, b.Name, string(b.PeriodType), encodeDate(b.StartDate), b.CreatedAt.Format(timestampFormat))
	if err != nil {
		return fmt.Errorf("inserting budget: %w", err)
	}
	return nil
}

// GetBudget returns a budget by id, or ErrNotFound.
func (s *Store) GetBudget(ctx context.Context, id string) (model.Budget, error) {
	var b model.Budget
	var periodType, startDate, createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, period_type, start_date, created_at FROM budgets WHERE id = ?`, id).
		Scan(&b.ID, &b.Name, &periodType, &startDate, &createdAt)
	if err != nil {
		return model.Budget{}, fmt.Errorf("budget %s: %w", id, scanErr(err))
	}

	b.PeriodType = model.PeriodType(periodType)
	if b.StartDate, err = decodeDate(startDate); err != nil {
		return model.Budget{}, err
	}
	if b.CreatedAt, err = time.Parse(timestampFormat, createdAt); err != nil {
		return model.Budget{}, fmt.Errorf("bad stored timestamp %q: %w", createdAt, err)
	}
	return b, nil
}

// ListBudgets returns all budgets ordered by name.
func (s *Store) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, period_type, start_date, created_at FROM budgets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []model.Budget
	for rows.Next() {
		var b model.Budget
		var periodType, startDate, createdAt string
		if err := rows.Scan(&b.ID, &b.Name, &periodType, &startDate, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}
		b.PeriodType = model.PeriodType(periodType)
		if b.StartDate, err = decodeDate(startDate); err != nil {
			return nil, err
		}
		if b.CreatedAt, err = time.Parse(timestampFormat, createdAt); err != nil {
			return nil, fmt.Errorf("bad stored timestamp %q: %w", createdAt, err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// DeleteBudget removes a budget; allocations and periods cascade.
func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("budget %s: %w", id, ErrNotFound)
	}
	return nil
}

// UpsertAllocation sets the planned amount for a (budget, category)
/// pair, replacing any existing row. A single logical operation: the
// pair never ends up with zero or duplicate rows.
func (s *Store) UpsertAllocation(ctx context.Context, a model.BudgetAllocation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budget_allocations (budget_id, category_id, amount, rollover)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (budget_id, category_id)
		 DO UPDATE SET amount = excluded.amount, rollover = excluded.rollover`,
		a.BudgetID, a.CategoryID, a.Amount.String(), a.Rollover)
	if err != nil {
		return fmt.Errorf("upserting allocation: %w", err)
	}
	return nil
}

// ListAllocations returns a budget's allocations.
func (s *Store) ListAllocations(ctx context.Context, budgetID string) ([]model.BudgetAllocation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT budget_id, category_id, amount, rollover
		 FROM budget_allocations WHERE budget_id = ? ORDER BY category_id`, budgetID)
	if err != nil {
		return nil, fmt.Errorf("listing allocations: %w", err)
	}
	defer rows.Close()

	var allocs []model.BudgetAllocation
	for rows.Next() {
		var a model.BudgetAllocation
		var amount string
		if err := rows.Scan(&a.BudgetID, &a.CategoryID, &amount, &a.Rollover); err != nil {
			return nil, fmt.Errorf("scanning allocation: %w", err)
		}
		if a.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("bad stored amount %q: %w", amount, err)
		}
		allocs = append(allocs, a)
	}
	return allocs, rows.Err()
}

// GetPeriod returns the materialized period with this exact start
// date, or ErrNotFound.
func (s *Store) GetPeriod(ctx context.Context, budgetID string, start time.Time) (model.BudgetPeriod, error) {
	var p model.BudgetPeriod
	var startDate, endDate, status string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, budget_id, start_date, end_date, status
		 FROM budget_periods WHERE budget_id = ? AND start_date = ?`,
		budgetID, encodeDate(start)).
		Scan(&p.ID, &p.BudgetID, &startDate, &endDate, &status)
	if err != nil {
		return model.BudgetPeriod{}, fmt.Errorf("period for budget %s at %s: %w",
			budgetID, encodeDate(start), scanErr(err))
	}

	if p.StartDate, err = decodeDate(startDate); err != nil {
		return model.BudgetPeriod{}, err
	}
	if p.EndDate, err = decodeDate(endDate); err != nil {
		return model.BudgetPeriod{}, err
	}
	p.Status = model.PeriodStatus(status)
	return p, nil
}

// CreatePeriod materializes a period row. The unique (budget, start)
// constraint guarantees at most one period per start date.
func (s *Store) CreatePeriod(ctx context.Context, p model.BudgetPeriod) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budget_periods (id, budget_id, start_date, end_date, status)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.BudgetID, encodeDate(p.StartDate), encodeDate(p.EndDate), string(p.Status))
	if err != nil {
		return fmt.Errorf("inserting period: %w", err)
	}
	return nil
}

// ClosePeriod marks a period closed. Closing is caller-driven; the
// engine never closes periods automatically.
func (s *Store) ClosePeriod(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE budget_periods SET status = ? WHERE id = ?`, string(model.PeriodClosed), id)
	if err != nil {
		return fmt.Errorf("closing period: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("closing period: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("period %s: %w", id, ErrNotFound)
	}
	return nil
}
