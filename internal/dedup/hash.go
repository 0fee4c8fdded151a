// Package dedup computes the import hash used to detect re-imports of
// the same bank statement rows.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// hashLen is the number of hex characters kept from the digest. The
// hash is a practical dedup key, not a security boundary; 64 bits of
// digest is plenty for a personal ledger.
const hashLen = 16

// Hash returns the dedup fingerprint for a transaction. It is a pure
// function of the four semantic identity fields: two transactions with
// the same date, description, amount (to the cent) and account always
// collide, regardless of which import run computed the hash.
func Hash(date time.Time, description string, amount decimal.Decimal, accountID string) string {
	input := fmt.Sprintf("%s|%s|%s|%s",
		date.Format("2006-01-02"), description, amount.StringFixed(2), accountID)
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])[:hashLen]
}
