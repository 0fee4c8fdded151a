package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneta-dev/moneta/internal/model"
)

// TransactionFilter selects transactions for listing. Zero-value
// fields are ignored; From/To are inclusive calendar days.
type TransactionFilter struct {
	AccountID  string
	CategoryID string
	From       time.Time
	To         time.Time
}

// InsertTransaction inserts one imported transaction.
func (s *Store) InsertTransaction(ctx context.Context, t model.Transaction) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions
		 (id, account_id, date, description, merchant, amount, category_id,
		  category_source, confidence, recurring_id, notes, raw_row, import_hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.AccountID, encodeDate(t.Date), t.Description, t.Merchant,
		t.Amount.String(), t.CategoryID, string(t.CategorySource), t.Confidence,
		t.RecurringID, t.Notes, t.RawRow, t.ImportHash)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

// HashExists reports whether a transaction with this import hash is
// already in the ledger for the account.
func (s *Store) HashExists(ctx context.Context, accountID, hash string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE account_id = ? AND import_hash = ?`,
		accountID, hash).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking import hash: %w", err)
	}
	return n > 0, nil
}

// ListTransactions returns transactions matching the filter, ordered
// by date then insertion.
func (s *Store) ListTransactions(ctx context.Context, f TransactionFilter) ([]model.Transaction, error) {
	var where []string
	var args []any
	if f.AccountID != "" {
		where = append(where, "account_id = ?")
		args = append(args, f.AccountID)
	}
	if f.CategoryID != "" {
		where = append(where, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	if !f.From.IsZero() {
		where = append(where, "date >= ?")
		args = append(args, encodeDate(f.From))
	}
	if !f.To.IsZero() {
		where = append(where, "date <= ?")
		args = append(args, encodeDate(f.To))
	}

	q := `SELECT id, account_id, date, description, merchant, amount, category_id,
	             category_source, confidence, recurring_id, notes, raw_row, import_hash
	      FROM transactions`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY date, rowid"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// SetTransactionCategory updates a transaction's category assignment.
// All other fields are immutable after import.
func (s *Store) SetTransactionCategory(ctx context.Context, id, categoryID string, source model.CategorySource, confidence float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET category_id = ?, category_source = ?, confidence = ? WHERE id = ?`,
		categoryID, string(source), confidence, id)
	if err != nil {
		return fmt.Errorf("updating transaction category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating transaction category: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(r rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var date, amount, source string
	err := r.Scan(&t.ID, &t.AccountID, &date, &t.Description, &t.Merchant,
		&amount, &t.CategoryID, &source, &t.Confidence, &t.RecurringID,
		&t.Notes, &t.RawRow, &t.ImportHash)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("scanning transaction: %w", err)
	}

	if t.Date, err = decodeDate(date); err != nil {
		return model.Transaction{}, err
	}
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return model.Transaction{}, fmt.Errorf("bad stored amount %q: %w", amount, err)
	}
	t.CategorySource = model.CategorySource(source)
	return t, nil
}
