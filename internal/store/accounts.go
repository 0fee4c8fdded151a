package store

import (
	"context"
	"fmt"

	"github.com/moneta-dev/moneta/internal/model"
)

// CreateAccount inserts a new account.
func (s *Store) CreateAccount(ctx context.Context, a model.Account) error {
	if !model.ValidAccountType(a.Type) {
		return fmt.Errorf("invalid account type %q", a.Type)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (id, name, institution, type) VALUES (?, ?, ?, ?)`,
		a.ID, a.Name, a.Institution, string(a.Type))
	if err != nil {
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

// GetAccount returns an account by id, or ErrNotFound.
func (s *Store) GetAccount(ctx context.Context, id string) (model.Account, error) {
	var a model.Account
	var typ string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, institution, type FROM accounts WHERE id = ?`, id).
		Scan(&a.ID, &a.Name, &a.Institution, &typ)
	if err != nil {
		return model.Account{}, fmt.Errorf("account %s: %w", id, scanErr(err))
	}
	a.Type = model.AccountType(typ)
	return a, nil
}

// ListAccounts returns all accounts ordered by name.
func (s *Store) ListAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, institution, type FROM accounts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		var typ string
		if err := rows.Scan(&a.ID, &a.Name, &a.Institution, &typ); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		a.Type = model.AccountType(typ)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
