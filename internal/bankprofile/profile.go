// Package bankprofile holds the static catalog of known bank CSV
// layouts and the detector that matches a file's headers against it.
package bankprofile

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var embeddedProfiles []byte

// ColumnMapping names the CSV headers that carry each transaction
// field. Either Amount, or the Debit/Credit pair, must be set.
type ColumnMapping struct {
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Amount      string `yaml:"amount,omitempty"`
	Debit       string `yaml:"debit,omitempty"`
	Credit      string `yaml:"credit,omitempty"`
}

// AmountFormat describes how a bank writes monetary values.
type AmountFormat struct {
	DecimalSeparator   string `yaml:"decimal_separator"`
	ThousandsSeparator string `yaml:"thousands_separator"`
	ParensNegative     bool   `yaml:"parens_negative"`
}

// Profile is a declarative description of one bank's CSV export
// layout. Adding a bank means adding a registry entry; the detector
// and pipeline need no code change.
type Profile struct {
	ID             string        `yaml:"id"`
	Name           string        `yaml:"name"`
	HeaderPatterns [][]string    `yaml:"header_patterns"`
	Columns        ColumnMapping `yaml:"columns"`
	DateFormat     string        `yaml:"date_format"` // Go time layout
	Amount         AmountFormat  `yaml:"amount"`
}

// SplitAmount reports whether the profile uses separate debit and
// credit columns instead of one signed amount column.
func (p *Profile) SplitAmount() bool {
	return p.Columns.Amount == "" && (p.Columns.Debit != "" || p.Columns.Credit != "")
}

// Registry is the versioned list of known bank profiles.
type Registry struct {
	profiles []Profile
	byID     map[string]*Profile
}

type profileSet struct {
	Profiles []Profile `yaml:"profiles"`
}

// NewRegistry builds a registry from YAML profile data.
func NewRegistry(data []byte) (*Registry, error) {
	var set profileSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parsing bank profiles: %w", err)
	}

	byID := make(map[string]*Profile, len(set.Profiles))
	for i := range set.Profiles {
		p := &set.Profiles[i]
		if p.ID == "" {
			return nil, fmt.Errorf("profile %d: id is required", i)
		}
		if _, ok := byID[p.ID]; ok {
			return nil, fmt.Errorf("duplicate profile id %q", p.ID)
		}
		if len(p.HeaderPatterns) == 0 {
			return nil, fmt.Errorf("profile %q: at least one header pattern is required", p.ID)
		}
		if p.Columns.Date == "" || p.Columns.Description == "" {
			return nil, fmt.Errorf("profile %q: date and description columns are required", p.ID)
		}
		if p.Columns.Amount == "" && p.Columns.Debit == "" && p.Columns.Credit == "" {
			return nil, fmt.Errorf("profile %q: an amount column (or debit/credit pair) is required", p.ID)
		}
		byID[p.ID] = p
	}
	return &Registry{profiles: set.Profiles, byID: byID}, nil
}

// LoadEmbedded loads the built-in profiles.yaml catalog.
func LoadEmbedded() (*Registry, error) {
	r, err := NewRegistry(embeddedProfiles)
	if err != nil {
		return nil, fmt.Errorf("loading embedded profiles: %w", err)
	}
	return r, nil
}

// LoadFromFile loads a profile catalog from disk, for user-supplied
// bank layouts.
func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles file: %w", err)
	}
	return NewRegistry(data)
}

// Get returns the profile with the given id, or nil.
func (r *Registry) Get(id string) *Profile {
	return r.byID[id]
}

// All returns the profiles in registry order.
func (r *Registry) All() []Profile {
	out := make([]Profile, len(r.profiles))
	copy(out, r.profiles)
	return out
}
