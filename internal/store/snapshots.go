package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/moneta-dev/moneta/internal/model"
)

// UpsertSnapshot records an account balance for a day, replacing any
// snapshot already recorded for that (account, date).
func (s *Store) UpsertSnapshot(ctx context.Context, snap model.BalanceSnapshot) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO balance_snapshots (account_id, date, balance, source)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (account_id, date)
		 DO UPDATE SET balance = excluded.balance, source = excluded.source`,
		snap.AccountID, encodeDate(snap.Date), snap.Balance.String(), string(snap.Source))
	if err != nil {
		return fmt.Errorf("upserting snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns an account's snapshots in date order.
func (s *Store) ListSnapshots(ctx context.Context, accountID string) ([]model.BalanceSnapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT account_id, date, balance, source
		 FROM balance_snapshots WHERE account_id = ? ORDER BY date`, accountID)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []model.BalanceSnapshot
	for rows.Next() {
		var snap model.BalanceSnapshot
		var date, balance, source string
		if err := rows.Scan(&snap.AccountID, &date, &balance, &source); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		if snap.Date, err = decodeDate(date); err != nil {
			return nil, err
		}
		if snap.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("bad stored balance %q: %w", balance, err)
		}
		snap.Source = model.SnapshotSource(source)
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}
