package models

import (
	"sort"
	"time"
)

// NoTransactionsDate is the last date reported by an empty ledger. Every real
// record is on or after it.
var NoTransactionsDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Ledger is an immutable, newest-first snapshot of recorded transactions.
// Methods never modify the receiver; Prepend returns a new value.
type Ledger struct {
	records []Transaction
}

// NewLedger builds a snapshot over a copy of records, keeping their order.
func NewLedger(records []Transaction) Ledger {
	return Ledger{records: copyRecords(records)}
}

// Len returns the number of records.
func (l Ledger) Len() int {
	return len(l.records)
}

// IsEmpty reports whether the ledger holds no records.
func (l Ledger) IsEmpty() bool {
	return len(l.records) == 0
}

// Records returns a copy of the records in ledger order.
func (l Ledger) Records() []Transaction {
	return copyRecords(l.records)
}

// LastDate returns the most recent date in the ledger, or NoTransactionsDate
// when it is empty.
func (l Ledger) LastDate() time.Time {
	last := NoTransactionsDate
	for _, r := range l.records {
		if r.Date.After(last) {
			last = r.Date
		}
	}
	return last
}

// RecordsOn returns the records dated on the same day as d.
func (l Ledger) RecordsOn(d time.Time) []Transaction {
	var out []Transaction
	for _, r := range l.records {
		if r.SameDay(d) {
			out = append(out, r)
		}
	}
	return out
}

// IsNewestFirst reports whether no record is dated after the one before it.
func (l Ledger) IsNewestFirst() bool {
	return sort.SliceIsSorted(l.records, func(i, j int) bool {
		return l.records[i].Date.After(l.records[j].Date)
	})
}

// Prepend returns a new ledger with records placed before the existing ones.
func (l Ledger) Prepend(records []Transaction) Ledger {
	merged := make([]Transaction, 0, len(records)+len(l.records))
	merged = append(merged, records...)
	merged = append(merged, l.records...)
	return Ledger{records: merged}
}

// SortNewestFirst stable-sorts records by descending date, keeping the
// relative order of records that share a date.
func SortNewestFirst(records []Transaction) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
}

func copyRecords(records []Transaction) []Transaction {
	if records == nil {
		return nil
	}
	out := make([]Transaction, len(records))
	copy(out, records)
	return out
}
