// Package ingest turns raw bank CSV text into normalized transactions
// using a resolved or detected bank profile.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneta-dev/moneta/internal/bankprofile"
	"github.com/moneta-dev/moneta/internal/dedup"
)

// ParsedTransaction is one normalized CSV row ready for import.
type ParsedTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	RawRow      string

	// ImportHash is filled at parse time when the caller supplied an
	// account id; the executor never recomputes it from stored rows.
	ImportHash string
}

// Options control profile resolution and hash computation.
type Options struct {
	ProfileID string // explicit profile; skip detection when set
	AccountID string // target account; enables hash computation
}

// Result is the outcome of one Parse call. Row-level problems land in
// Errors (1-indexed row numbers counting the header) and skip only
// that row; file-level problems are returned as the Parse error with
// zero transactions.
type Result struct {
	Transactions []ParsedTransaction
	Profile      *bankprofile.Profile
	Errors       []string
	TotalRows    int
}

// Pipeline parses CSV exports against a profile registry.
type Pipeline struct {
	registry      *bankprofile.Registry
	minConfidence float64
	dropZero      bool
}

// NewPipeline creates a Pipeline. minConfidence gates profile
// detection; dropZero controls the zero-amount balance-marker policy.
func NewPipeline(registry *bankprofile.Registry, minConfidence float64, dropZero bool) *Pipeline {
	return &Pipeline{registry: registry, minConfidence: minConfidence, dropZero: dropZero}
}

// Parse reads a whole CSV export. Malformed CSV, an empty or
// header-only file, an unknown explicit profile, or an undetectable
// profile abort the call; no transactions are guessed.
func (p *Pipeline) Parse(r io.Reader, opts Options) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return &Result{}, fmt.Errorf("malformed CSV: %w", err)
	}
	if len(records) == 0 {
		return &Result{}, fmt.Errorf("empty file")
	}

	header := records[0]
	rows := records[1:]
	res := &Result{TotalRows: len(rows)}

	if len(rows) == 0 {
		return res, fmt.Errorf("no data rows (header only)")
	}

	profile, err := p.resolveProfile(header, opts)
	if err != nil {
		return res, err
	}
	res.Profile = profile

	cols, err := resolveColumns(header, profile)
	if err != nil {
		return res, err
	}

	for i, rec := range rows {
		rowNum := i + 2 // 1-indexed, counting the header row

		if isEmptyRow(rec) {
			continue
		}

		txn, err := parseRow(rec, cols, profile)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		if txn.Amount.IsZero() && p.dropZero {
			// Zero-amount balance marker, dropped silently.
			continue
		}

		if opts.AccountID != "" {
			txn.ImportHash = dedup.Hash(txn.Date, txn.Description, txn.Amount, opts.AccountID)
		}
		res.Transactions = append(res.Transactions, *txn)
	}

	return res, nil
}

// ParseString is a convenience wrapper over Parse.
func (p *Pipeline) ParseString(text string, opts Options) (*Result, error) {
	return p.Parse(strings.NewReader(text), opts)
}

func (p *Pipeline) resolveProfile(header []string, opts Options) (*bankprofile.Profile, error) {
	if opts.ProfileID != "" {
		profile := p.registry.Get(opts.ProfileID)
		if profile == nil {
			return nil, fmt.Errorf("unknown bank profile %q", opts.ProfileID)
		}
		return profile, nil
	}

	m := p.registry.Detect(header, p.minConfidence)
	if m == nil {
		return nil, fmt.Errorf("could not detect bank profile from headers %v; specify one explicitly", header)
	}
	return m.Profile, nil
}

// columnIndexes maps profile column names to positions in this file's
// header row. -1 = column not present.
type columnIndexes struct {
	date   int
	desc   int
	amount int
	debit  int
	credit int
}

func resolveColumns(header []string, profile *bankprofile.Profile) (columnIndexes, error) {
	cols := columnIndexes{date: -1, desc: -1, amount: -1, debit: -1, credit: -1}

	find := func(name string) int {
		if name == "" {
			return -1
		}
		want := strings.ToLower(strings.TrimSpace(name))
		for i, h := range header {
			if strings.ToLower(strings.TrimSpace(h)) == want {
				return i
			}
		}
		// Substring fallback mirrors the detector's partial matching.
		for i, h := range header {
			have := strings.ToLower(strings.TrimSpace(h))
			if have != "" && (strings.Contains(have, want) || strings.Contains(want, have)) {
				return i
			}
		}
		return -1
	}

	cols.date = find(profile.Columns.Date)
	cols.desc = find(profile.Columns.Description)
	cols.amount = find(profile.Columns.Amount)
	cols.debit = find(profile.Columns.Debit)
	cols.credit = find(profile.Columns.Credit)

	if cols.date < 0 {
		return cols, fmt.Errorf("profile %q: date column %q not found in header", profile.ID, profile.Columns.Date)
	}
	if cols.desc < 0 {
		return cols, fmt.Errorf("profile %q: description column %q not found in header", profile.ID, profile.Columns.Description)
	}
	if cols.amount < 0 && cols.debit < 0 && cols.credit < 0 {
		return cols, fmt.Errorf("profile %q: no amount mapping resolved from header", profile.ID)
	}
	return cols, nil
}

func parseRow(rec []string, cols columnIndexes, profile *bankprofile.Profile) (*ParsedTransaction, error) {
	date, err := parseDate(cell(rec, cols.date), profile.DateFormat)
	if err != nil {
		return nil, err
	}

	desc := strings.TrimSpace(cell(rec, cols.desc))
	if desc == "" {
		return nil, fmt.Errorf("missing description")
	}

	amount, err := rowAmount(rec, cols, profile.Amount)
	if err != nil {
		return nil, err
	}

	return &ParsedTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		RawRow:      strings.Join(rec, ","),
	}, nil
}

// rowAmount resolves the signed amount: a single column when mapped,
// otherwise credit − |debit| from the split pair.
func rowAmount(rec []string, cols columnIndexes, format bankprofile.AmountFormat) (decimal.Decimal, error) {
	if cols.amount >= 0 {
		return parseAmount(cell(rec, cols.amount), format)
	}

	debit := decimal.Zero
	if s := strings.TrimSpace(cell(rec, cols.debit)); s != "" {
		d, err := parseAmount(s, format)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("debit column: %w", err)
		}
		debit = d.Abs()
	}
	credit := decimal.Zero
	if s := strings.TrimSpace(cell(rec, cols.credit)); s != "" {
		c, err := parseAmount(s, format)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("credit column: %w", err)
		}
		credit = c
	}
	return credit.Sub(debit), nil
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return rec[idx]
}

func isEmptyRow(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
