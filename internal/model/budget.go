package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodType is the cadence a budget repeats on.
type PeriodType string

const (
	PeriodMonthly PeriodType = "monthly"
	PeriodWeekly  PeriodType = "weekly"
	PeriodYearly  PeriodType = "yearly"
)

// PeriodStatus is the lifecycle state of a materialized budget period.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "open"
	PeriodClosed PeriodStatus = "closed"
)

// Budget is a user-defined spending plan. StartDate anchors the period
// phase: weekly budgets repeat on the weekday the budget was created on.
type Budget struct {
	ID         string
	Name       string
	PeriodType PeriodType
	StartDate  time.Time
	CreatedAt  time.Time
}

// BudgetAllocation is the planned amount for one (budget, category)
// pair. Setting an allocation for an existing pair replaces it.
type BudgetAllocation struct {
	BudgetID   string
	CategoryID string
	Amount     decimal.Decimal
	Rollover   bool // carry unspent (or overspent) amount into the next period
}

// BudgetPeriod is a materialized instance of a budget's period, created
// lazily the first time it is queried. At most one period exists per
// (budget, start date).
type BudgetPeriod struct {
	ID        string
	BudgetID  string
	StartDate time.Time
	EndDate   time.Time
	Status    PeriodStatus
}

// ValidPeriodType reports whether t is a known budget period type.
func ValidPeriodType(t PeriodType) bool {
	switch t {
	case PeriodMonthly, PeriodWeekly, PeriodYearly:
		return true
	}
	return false
}
