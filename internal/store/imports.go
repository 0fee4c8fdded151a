package store

import (
	"context"
	"fmt"
	"time"

	"github.com/moneta-dev/moneta/internal/model"
)

// AppendImport writes one row to the append-only import audit log.
// Written only after every row of a batch has been processed.
func (s *Store) AppendImport(ctx context.Context, rec model.ImportRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO imports (id, filename, profile_id, account_id, total_rows, imported, skipped, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Filename, rec.ProfileID, rec.AccountID,
		rec.TotalRows, rec.Imported, rec.Skipped, rec.CreatedAt.Format(timestampFormat))
	if err != nil {
		return fmt.Errorf("appending import record: %w", err)
	}
	return nil
}

// ListImports returns the audit trail, most recent first.
func (s *Store) ListImports(ctx context.Context) ([]model.ImportRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, profile_id, account_id, total_rows, imported, skipped, created_at
		 FROM imports ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing imports: %w", err)
	}
	defer rows.Close()

	var recs []model.ImportRecord
	for rows.Next() {
		var rec model.ImportRecord
		var createdAt string
		if err := rows.Scan(&rec.ID, &rec.Filename, &rec.ProfileID, &rec.AccountID,
			&rec.TotalRows, &rec.Imported, &rec.Skipped, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning import record: %w", err)
		}
		if rec.CreatedAt, err = time.Parse(timestampFormat, createdAt); err != nil {
			return nil, fmt.Errorf("bad stored timestamp %q: %w", createdAt, err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
