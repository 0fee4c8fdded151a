package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/moneta-dev/moneta/internal/model"
)

// defaultCategories are seeded at first run. Users manage the rest.
var defaultCategories = []model.Category{
	{Name: "Salary", IsIncome: true},
	{Name: "Other Income", IsIncome: true},
	{Name: "Housing"},
	{Name: "Utilities"},
	{Name: "Groceries"},
	{Name: "Dining"},
	{Name: "Transportation"},
	{Name: "Healthcare"},
	{Name: "Entertainment"},
	{Name: "Shopping"},
	{Name: "Travel"},
	{Name: "Subscriptions"},
	{Name: "Other"},
}

// SeedDefaultCategories inserts the default category set if the table
// is empty. Safe to call on every startup.
func (s *Store) SeedDefaultCategories(ctx context.Context) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return fmt.Errorf("counting categories: %w", err)
	}
	if n > 0 {
		return nil
	}

	for i, c := range defaultCategories {
		c.ID = uuid.NewString()
		c.IsSystem = true
		c.SortOrder = i
		if err := s.CreateCategory(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// CreateCategory inserts a category.
func (s *Store) CreateCategory(ctx context.Context, c model.Category) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, parent_id, is_income, is_system, sort_order)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.ParentID, c.IsIncome, c.IsSystem, c.SortOrder)
	if err != nil {
		return fmt.Errorf("inserting category %s: %w", c.Name, err)
	}
	return nil
}

// GetCategory returns a category by id, or ErrNotFound.
func (s *Store) GetCategory(ctx context.Context, id string) (model.Category, error) {
	var c model.Category
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, parent_id, is_income, is_system, sort_order
		 FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.ParentID, &c.IsIncome, &c.IsSystem, &c.SortOrder)
	if err != nil {
		return model.Category{}, fmt.Errorf("category %s: %w", id, scanErr(err))
	}
	return c, nil
}

// ListCategories returns all categories in sort order.
func (s *Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, parent_id, is_income, is_system, sort_order
		 FROM categories ORDER BY sort_order, name`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cats []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID, &c.IsIncome, &c.IsSystem, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}
