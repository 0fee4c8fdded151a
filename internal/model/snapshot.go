package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotSource records where a balance snapshot came from.
type SnapshotSource string

const (
	SnapshotImport     SnapshotSource = "import"
	SnapshotManual     SnapshotSource = "manual"
	SnapshotCalculated SnapshotSource = "calculated"
)

// BalanceSnapshot is an account balance observed on a given day, used
// for reconciliation. Upserts are keyed on (account, date).
type BalanceSnapshot struct {
	AccountID string
	Date      time.Time
	Balance   decimal.Decimal
	Source    SnapshotSource
}
