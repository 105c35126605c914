// Package reconcile merges incoming batches into the ledger.
//
// The engine is pure: it receives a ledger snapshot and a parsed batch and
// returns a new snapshot. Loading and persisting the ledger belong to the
// caller, as does making sure only one import runs against a ledger at a time.
package reconcile

import (
	"errors"

	"fjacquet/ledger-import/internal/categorizer"
	"fjacquet/ledger-import/internal/dedup"
	"fjacquet/ledger-import/internal/logging"
	"fjacquet/ledger-import/internal/models"
	"fjacquet/ledger-import/internal/parsererror"
)

// Result summarizes one import.
type Result struct {
	Read           int
	BeforeBoundary int
	Duplicates     int
	Added          int
	Categorized    int
	Uncategorized  int
}

// Engine runs deduplication, categorization and merge.
type Engine struct {
	dedup       *dedup.Deduplicator
	categorizer *categorizer.Categorizer
	logger      logging.Logger
}

// NewEngine creates an Engine. A nil logger discards output.
func NewEngine(cat *categorizer.Categorizer, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	return &Engine{
		dedup:       dedup.NewDeduplicator(logger),
		categorizer: cat,
		logger:      logger,
	}
}

// Import merges batch into ledger and returns the updated ledger.
//
// New records are stable-sorted newest-first and placed before the existing
// records. The input ledger is never modified; on error it is the caller's
// ledger that stays current and nothing is merged.
func (e *Engine) Import(batch []models.Transaction, ledger models.Ledger) (models.Ledger, Result, error) {
	if e.categorizer == nil {
		return ledger, Result{}, errors.New("reconcile: engine has no categorizer")
	}
	for i, tx := range batch {
		if tx.Date.IsZero() {
			return ledger, Result{}, &parsererror.ParseError{
				Source: "batch",
				Row:    i + 1,
				Field:  "date",
				Value:  "",
				Err:    errors.New("missing date"),
			}
		}
	}

	fresh, dres := e.dedup.DeduplicateAgainst(batch, ledger)
	categorized, cres := e.categorizer.Categorize(fresh)
	models.SortNewestFirst(categorized)

	res := Result{
		Read:           dres.Read,
		BeforeBoundary: dres.BeforeBoundary,
		Duplicates:     dres.Duplicates,
		Added:          len(categorized),
		Categorized:    cres.Categorized,
		Uncategorized:  cres.Uncategorized,
	}

	e.logger.Debug("Batch reconciled against ledger",
		logging.F(logging.FieldDate, ledger.LastDate().Format("2006-01-02")),
		logging.F(logging.FieldRead, res.Read),
		logging.F(logging.FieldDropped, res.BeforeBoundary),
		logging.F(logging.FieldDuplicates, res.Duplicates),
		logging.F(logging.FieldAdded, res.Added),
	)

	if len(categorized) == 0 {
		return ledger, res, nil
	}
	return ledger.Prepend(categorized), res, nil
}

// Recategorize fills categories for every uncategorized ledger record. It
// returns the new ledger and how many records received a category.
func (e *Engine) Recategorize(ledger models.Ledger) (models.Ledger, categorizer.Result) {
	records, res := e.categorizer.Categorize(ledger.Records())
	return models.NewLedger(records), res
}
