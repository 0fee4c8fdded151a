package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategorySource records how a transaction got its category.
type CategorySource string

const (
	CategorySourceRule   CategorySource = "rule"
	CategorySourceAI     CategorySource = "ai"
	CategorySourceManual CategorySource = "manual"
)

// Transaction is one ledger entry imported from a bank CSV row.
// Sign convention: positive = income/credit, negative = expense/debit.
// A transaction is immutable once imported except for category and
// merchant edits.
type Transaction struct {
	ID          string
	AccountID   string
	Date        time.Time // calendar day, no time component
	Description string    // raw description from the export
	Merchant    string    // normalized merchant, empty if unknown
	Amount      decimal.Decimal

	CategoryID     string // empty = uncategorized
	CategorySource CategorySource
	Confidence     float64 // only meaningful for rule/ai assignments

	RecurringID string // link to a recurring payment, empty if none
	Notes       string
	RawRow      string // original CSV row kept for audit

	// ImportHash is the dedup key: a digest of date, description,
	// amount and account computed once at parse time.
	ImportHash string
}
