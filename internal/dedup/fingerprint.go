// Package dedup filters incoming batch records that are already present in the ledger.
package dedup

import (
	"fmt"
	"strings"

	"fjacquet/ledger-import/internal/dateutils"
	"fjacquet/ledger-import/internal/models"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
)

// fieldSeparator cannot appear in a rendered date or amount, and is unlikely in
// a bank description.
const fieldSeparator = "\x1f"

// Fingerprint is a content hash over a record's date, description and amounts.
// Category is excluded: it is assigned after import and must not affect
// duplicate detection.
type Fingerprint uint64

// String renders the fingerprint as fixed-width hex.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x", uint64(f))
}

// FingerprintOf computes the fingerprint of tx.
func FingerprintOf(tx models.Transaction) Fingerprint {
	return Fingerprint(xxhash.Sum64String(canonical(tx)))
}

// canonical renders the fingerprinted fields deterministically. Amounts are
// normalized so that "4.5" and "4.50" render identically, and CRLF line breaks
// in a description count as LF since CSV readers fold them.
func canonical(tx models.Transaction) string {
	return strings.Join([]string{
		dateutils.FormatDay(tx.Date, dateutils.DateLayoutISO),
		strings.ReplaceAll(tx.Description, "\r\n", "\n"),
		normalizeAmount(tx.AmountSpent),
		normalizeAmount(tx.AmountReceived),
	}, fieldSeparator)
}

func normalizeAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	return d.String()
}

// FingerprintSet is a set of fingerprints.
type FingerprintSet map[Fingerprint]struct{}

// NewFingerprintSet fingerprints every record.
func NewFingerprintSet(records []models.Transaction) FingerprintSet {
	set := make(FingerprintSet, len(records))
	for _, r := range records {
		set[FingerprintOf(r)] = struct{}{}
	}
	return set
}

// Contains reports whether tx's fingerprint is in the set.
func (s FingerprintSet) Contains(tx models.Transaction) bool {
	_, ok := s[FingerprintOf(tx)]
	return ok
}
