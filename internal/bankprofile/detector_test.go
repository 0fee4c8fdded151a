package bankprofile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := LoadEmbedded()
	require.NoError(t, err)
	return r
}

func TestDetect_ExactChaseHeaders(t *testing.T) {
	r := loadTestRegistry(t)

	m := r.Detect([]string{"Details", "Posting Date", "Description", "Amount", "Type", "Balance", "Check or Slip #"}, DefaultMinConfidence)
	require.NotNil(t, m)
	assert.Equal(t, "chase", m.Profile.ID)
	assert.Equal(t, 1.0, m.Confidence)
}

func TestDetect_NormalizesCaseAndWhitespace(t *testing.T) {
	r := loadTestRegistry(t)

	m := r.Detect([]string{" DATE ", "Description", "AMOUNT", "Running Bal."}, DefaultMinConfidence)
	require.NotNil(t, m)
	assert.Equal(t, "bofa", m.Profile.ID)
}

func TestDetect_DebitCreditProfile(t *testing.T) {
	r := loadTestRegistry(t)

	m := r.Detect([]string{"Transaction Date", "Posted Date", "Card No.", "Description", "Category", "Debit", "Credit"}, DefaultMinConfidence)
	require.NotNil(t, m)
	assert.Equal(t, "capitalone", m.Profile.ID)
	assert.True(t, m.Profile.SplitAmount())
}

func TestDetect_PartialMatchScoresBelowExact(t *testing.T) {
	r := loadTestRegistry(t)

	// "posting date" only partially covers the generic "date" header,
	// so generic should still win with full credit on all three.
	m := r.Detect([]string{"Date", "Description", "Amount"}, DefaultMinConfidence)
	require.NotNil(t, m)
	assert.Equal(t, "generic", m.Profile.ID)
	assert.Equal(t, 1.0, m.Confidence)
}

func TestDetect_NoMatchBelowThreshold(t *testing.T) {
	r := loadTestRegistry(t)

	m := r.Detect([]string{"Foo", "Bar", "Baz"}, DefaultMinConfidence)
	assert.Nil(t, m)
}

func TestDetect_EmptyHeaders(t *testing.T) {
	r := loadTestRegistry(t)
	assert.Nil(t, r.Detect(nil, DefaultMinConfidence))
	assert.Nil(t, r.Detect([]string{"", ""}, DefaultMinConfidence))
}

func TestDetect_TieKeepsFirstRegistered(t *testing.T) {
	r, err := NewRegistry([]byte(`
profiles:
  - id: first
    name: First
    date_format: "2006-01-02"
    header_patterns:
      - [date, description, amount]
    columns: {date: date, description: description, amount: amount}
  - id: second
    name: Second
    date_format: "2006-01-02"
    header_patterns:
      - [date, description, amount]
    columns: {date: date, description: description, amount: amount}
`))
	require.NoError(t, err)

	m := r.Detect([]string{"Date", "Description", "Amount"}, DefaultMinConfidence)
	require.NotNil(t, m)
	assert.Equal(t, "first", m.Profile.ID)
}

func TestNewRegistry_Validation(t *testing.T) {
	_, err := NewRegistry([]byte(`profiles: [{name: NoID}]`))
	assert.Error(t, err)

	_, err = NewRegistry([]byte(`
profiles:
  - id: dup
    name: A
    header_patterns: [[date]]
    columns: {date: date, description: d, amount: a}
  - id: dup
    name: B
    header_patterns: [[date]]
    columns: {date: date, description: d, amount: a}
`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate profile id")

	_, err = NewRegistry([]byte(`
profiles:
  - id: nocols
    name: A
    header_patterns: [[date]]
    columns: {date: date, description: d}
`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "amount column")
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
profiles:
  - id: mybank
    name: My Bank
    date_format: "2006-01-02"
    header_patterns:
      - [date, memo, value]
    columns: {date: date, description: memo, amount: value}
`), 0o644))

	r, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.NotNil(t, r.Get("mybank"))

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRegistry_GetAndAll(t *testing.T) {
	r := loadTestRegistry(t)

	assert.NotNil(t, r.Get("chase"))
	assert.Nil(t, r.Get("unknown-bank"))
	assert.NotEmpty(t, r.All())
}
