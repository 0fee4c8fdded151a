package store

import (
	"context"
	"fmt"

	"github.com/moneta-dev/moneta/internal/model"
)

// CreateRule inserts a categorization rule. The rule matcher itself
// lives outside this engine; the store only keeps the catalog.
func (s *Store) CreateRule(ctx context.Context, r model.CategorizationRule) error {
	if !model.ValidMatchType(r.MatchType) {
		return fmt.Errorf("invalid match type %q", r.MatchType)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO categorization_rules (id, pattern, match_type, category_id, priority, active)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Pattern, string(r.MatchType), r.CategoryID, r.Priority, r.Active)
	if err != nil {
		return fmt.Errorf("inserting rule: %w", err)
	}
	return nil
}

// ListRules returns rules by descending priority. With activeOnly,
// disabled rules are omitted.
func (s *Store) ListRules(ctx context.Context, activeOnly bool) ([]model.CategorizationRule, error) {
	q := `SELECT id, pattern, match_type, category_id, priority, active
	      FROM categorization_rules`
	if activeOnly {
		q += ` WHERE active = 1`
	}
	q += ` ORDER BY priority DESC, id`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	defer rows.Close()

	var rules []model.CategorizationRule
	for rows.Next() {
		var r model.CategorizationRule
		var matchType string
		if err := rows.Scan(&r.ID, &r.Pattern, &matchType, &r.CategoryID, &r.Priority, &r.Active); err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}
		r.MatchType = model.MatchType(matchType)
		rules = append(rules, r)
	}
	return rules, rows.Err()
}
