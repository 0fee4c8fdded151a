package ingest

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/moneta-dev/moneta/internal/bankprofile"
)

// currencyRunes are symbols stripped before numeric parsing.
const currencyRunes = "$€£¥"

// parseAmount converts one raw CSV amount cell into a decimal using
// the profile's amount format. Parenthesized values are negative when
// the profile says so, or when the literal syntax leaves no doubt and
// no other sign is present.
func parseAmount(raw string, format bankprofile.AmountFormat) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
		negative = true
	}

	// Strip currency symbols and whitespace anywhere in the value.
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(currencyRunes, r) || r == ' ' || r == '\u00a0' {
			return -1
		}
		return r
	}, s)

	// Trailing minus appears in some European exports.
	if strings.HasSuffix(s, "-") {
		s = "-" + strings.TrimSuffix(s, "-")
	}
	s = strings.TrimPrefix(s, "+")

	if sep := format.ThousandsSeparator; sep != "" && sep != "." {
		s = strings.ReplaceAll(s, sep, "")
	} else if sep == "." && format.DecimalSeparator != "." {
		s = strings.ReplaceAll(s, ".", "")
	}
	if sep := format.DecimalSeparator; sep != "" && sep != "." {
		s = strings.Replace(s, sep, ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unparseable amount %q", raw)
	}

	if negative && d.IsPositive() {
		d = d.Neg()
	}
	return d, nil
}
