// Package store persists the ledger in an embedded sqlite database:
// accounts, transactions, categories, budgets, allocations, periods,
// balance snapshots and the append-only import log.
//
// The engine assumes a single writer per process; the surrounding
// application is responsible for serializing concurrent imports.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested row does not exist, so
// callers can tell "no such budget" apart from "zero budget".
var ErrNotFound = errors.New("not found")

// dateFormat is how calendar days are stored; no time component.
const dateFormat = "2006-01-02"

// Store wraps the sqlite connection.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	institution TEXT NOT NULL DEFAULT '',
	type        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	parent_id  TEXT NOT NULL DEFAULT '',
	is_income  INTEGER NOT NULL DEFAULT 0,
	is_system  INTEGER NOT NULL DEFAULT 0,
	sort_order INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS transactions (
	id              TEXT PRIMARY KEY,
	account_id      TEXT NOT NULL REFERENCES accounts(id),
	date            TEXT NOT NULL,
	description     TEXT NOT NULL,
	merchant        TEXT NOT NULL DEFAULT '',
	amount          TEXT NOT NULL,
	category_id     TEXT NOT NULL DEFAULT '',
	category_source TEXT NOT NULL DEFAULT '',
	confidence      REAL NOT NULL DEFAULT 0,
	recurring_id    TEXT NOT NULL DEFAULT '',
	notes           TEXT NOT NULL DEFAULT '',
	raw_row         TEXT NOT NULL DEFAULT '',
	import_hash     TEXT NOT NULL,
	UNIQUE (account_id, import_hash)
);
CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category_id);

CREATE TABLE IF NOT EXISTS categorization_rules (
	id          TEXT PRIMARY KEY,
	pattern     TEXT NOT NULL,
	match_type  TEXT NOT NULL,
	category_id TEXT NOT NULL REFERENCES categories(id),
	priority    INTEGER NOT NULL DEFAULT 0,
	active      INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS imports (
	id         TEXT PRIMARY KEY,
	filename   TEXT NOT NULL,
	profile_id TEXT NOT NULL DEFAULT '',
	account_id TEXT NOT NULL,
	total_rows INTEGER NOT NULL,
	imported   INTEGER NOT NULL,
	skipped    INTEGER NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS budgets (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	period_type TEXT NOT NULL,
	start_date  TEXT NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS budget_allocations (
	budget_id   TEXT NOT NULL REFERENCES budgets(id) ON DELETE CASCADE,
	category_id TEXT NOT NULL REFERENCES categories(id),
	amount      TEXT NOT NULL,
	rollover    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (budget_id, category_id)
);

CREATE TABLE IF NOT EXISTS budget_periods (
	id         TEXT PRIMARY KEY,
	budget_id  TEXT NOT NULL REFERENCES budgets(id) ON DELETE CASCADE,
	start_date TEXT NOT NULL,
	end_date   TEXT NOT NULL,
	status     TEXT NOT NULL,
	UNIQUE (budget_id, start_date)
);

CREATE TABLE IF NOT EXISTS balance_snapshots (
	account_id TEXT NOT NULL REFERENCES accounts(id),
	date       TEXT NOT NULL,
	balance    TEXT NOT NULL,
	source     TEXT NOT NULL,
	PRIMARY KEY (account_id, date)
);
`

// Open opens (creating if needed) the ledger database at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}
	// One connection: sqlite is single-writer, and a :memory: database
	// exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func encodeDate(t time.Time) string {
	return t.Format(dateFormat)
}

func decodeDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateFormat, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad stored date %q: %w", s, err)
	}
	return t, nil
}

// scanErr maps sql.ErrNoRows to ErrNotFound.
func scanErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
