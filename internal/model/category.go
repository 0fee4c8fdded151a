package model

// Category is a spending or income bucket. One level of hierarchy:
// a category may name a parent, parents may not.
type Category struct {
	ID        string
	Name      string
	ParentID  string // empty = top-level
	IsIncome  bool
	IsSystem  bool // seeded at first run, not user-deletable
	SortOrder int
}

// MatchType selects how a categorization rule pattern is applied.
type MatchType string

const (
	MatchContains MatchType = "contains"
	MatchRegex    MatchType = "regex"
	MatchExact    MatchType = "exact"
)

// CategorizationRule maps description patterns to a category. Rules are
// stored here and consumed by an external matcher; the engine only
// persists them.
type CategorizationRule struct {
	ID         string
	Pattern    string
	MatchType  MatchType
	CategoryID string
	Priority   int
	Active     bool
}

// ValidMatchType reports whether t is a known rule match type.
func ValidMatchType(t MatchType) bool {
	switch t {
	case MatchContains, MatchRegex, MatchExact:
		return true
	}
	return false
}
