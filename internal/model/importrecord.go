package model

import "time"

// ImportRecord is one row in the append-only import audit log, written
// after an import batch completes. A missing record means the batch may
// be partial; re-running it is safe because duplicates dedup away.
type ImportRecord struct {
	ID        string
	Filename  string
	ProfileID string // empty when the profile was resolved client-side
	AccountID string
	TotalRows int
	Imported  int
	Skipped   int
	CreatedAt time.Time
}
