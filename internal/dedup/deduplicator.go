package dedup

import (
	"time"

	"fjacquet/ledger-import/internal/dateutils"
	"fjacquet/ledger-import/internal/logging"
	"fjacquet/ledger-import/internal/models"
)

// Result counts what happened to a batch during deduplication.
type Result struct {
	Read           int
	BeforeBoundary int
	Duplicates     int
	Kept           int
}

// Deduplicator removes batch records already covered by the ledger.
//
// Only records dated exactly on the ledger's last date are compared by
// fingerprint. Records before it are dropped unconditionally and records after
// it are kept unconditionally. Records within the same batch are never
// compared with each other, so a batch that repeats a row imports it twice.
type Deduplicator struct {
	logger logging.Logger
}

// NewDeduplicator creates a Deduplicator. A nil logger discards output.
func NewDeduplicator(logger logging.Logger) *Deduplicator {
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	return &Deduplicator{logger: logger}
}

// Deduplicate returns the batch records not yet present in the ledger, in
// batch order. lastDay holds the ledger records dated on lastDate.
func (d *Deduplicator) Deduplicate(batch []models.Transaction, lastDate time.Time, lastDay []models.Transaction) ([]models.Transaction, Result) {
	res := Result{Read: len(batch)}
	seen := NewFingerprintSet(lastDay)

	kept := make([]models.Transaction, 0, len(batch))
	for _, tx := range batch {
		switch dateutils.CompareDates(tx.Date, lastDate) {
		case -1:
			res.BeforeBoundary++
			d.logger.Debug("Dropping record dated before the ledger's last date",
				logging.F(logging.FieldDate, dateutils.FormatDay(tx.Date, "")),
				logging.F(logging.FieldDescription, tx.Description))
		case 0:
			if seen.Contains(tx) {
				res.Duplicates++
				d.logger.Debug("Dropping record already in ledger",
					logging.F(logging.FieldDate, dateutils.FormatDay(tx.Date, "")),
					logging.F(logging.FieldDescription, tx.Description))
				continue
			}
			kept = append(kept, tx)
		default:
			kept = append(kept, tx)
		}
	}

	res.Kept = len(kept)
	return kept, res
}

// DeduplicateAgainst is Deduplicate using the ledger's own last date and records.
func (d *Deduplicator) DeduplicateAgainst(batch []models.Transaction, ledger models.Ledger) ([]models.Transaction, Result) {
	last := ledger.LastDate()
	return d.Deduplicate(batch, last, ledger.RecordsOn(last))
}
