package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/moneta-dev/moneta/internal/dedup"
	"github.com/moneta-dev/moneta/internal/ingest"
	"github.com/moneta-dev/moneta/internal/model"
)

// Ledger is the slice of the store the executor needs.
type Ledger interface {
	HashExists(ctx context.Context, accountID, hash string) (bool, error)
	InsertTransaction(ctx context.Context, t model.Transaction) error
	AppendImport(ctx context.Context, rec model.ImportRecord) error
}

// Result summarizes one import run.
type Result struct {
	Imported int
	Skipped  int
}

// Executor writes parsed transactions into an account, skipping any
// row whose import hash is already present. Re-running the same file
// imports nothing new.
type Executor struct {
	ledger Ledger
	log    zerolog.Logger
	now    func() time.Time
}

// NewExecutor creates an executor backed by ledger.
func NewExecutor(ledger Ledger, log zerolog.Logger) *Executor {
	return &Executor{ledger: ledger, log: log, now: time.Now}
}

// Execute imports txns into accountID and appends an audit record.
// filename and profileID are recorded for the audit trail only.
func (e *Executor) Execute(ctx context.Context, filename, profileID, accountID string, txns []ingest.ParsedTransaction) (Result, error) {
	var res Result
	for _, t := range txns {
		hash := t.ImportHash
		if hash == "" {
			hash = dedup.Hash(t.Date, t.Description, t.Amount, accountID)
		}

		exists, err := e.ledger.HashExists(ctx, accountID, hash)
		if err != nil {
			return res, fmt.Errorf("checking import hash: %w", err)
		}
		if exists {
			e.log.Debug().
				Str("hash", hash).
				Str("description", t.Description).
				Msg("skipping duplicate transaction")
			res.Skipped++
			continue
		}

		err = e.ledger.InsertTransaction(ctx, model.Transaction{
			ID:          uuid.NewString(),
			AccountID:   accountID,
			Date:        t.Date,
			Description: t.Description,
			Amount:      t.Amount,
			RawRow:      t.RawRow,
			ImportHash:  hash,
		})
		if err != nil {
			return res, fmt.Errorf("inserting transaction: %w", err)
		}
		res.Imported++
	}

	err := e.ledger.AppendImport(ctx, model.ImportRecord{
		ID:        uuid.NewString(),
		Filename:  filename,
		ProfileID: profileID,
		AccountID: accountID,
		TotalRows: len(txns),
		Imported:  res.Imported,
		Skipped:   res.Skipped,
		CreatedAt: e.now(),
	})
	if err != nil {
		return res, fmt.Errorf("recording import: %w", err)
	}

	e.log.Info().
		Str("file", filename).
		Int("imported", res.Imported).
		Int("skipped", res.Skipped).
		Msg("import complete")
	return res, nil
}
