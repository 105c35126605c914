// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single ledger record. Date has day granularity.
type Transaction struct {
	Date           time.Time
	Description    string
	Category       string
	AmountSpent    decimal.Decimal
	AmountReceived decimal.Decimal
}

// IsCategorized reports whether the record carries a real category.
func (t Transaction) IsCategorized() bool {
	return t.Category != "" && t.Category != CategoryUncategorized
}

// IsSpending returns true if money left the account.
func (t Transaction) IsSpending() bool {
	return t.AmountSpent.IsPositive()
}

// IsIncome returns true if money entered the account.
func (t Transaction) IsIncome() bool {
	return t.AmountReceived.IsPositive()
}

// SameDay reports whether the record falls on the same calendar day as d.
func (t Transaction) SameDay(d time.Time) bool {
	y1, m1, d1 := t.Date.Date()
	y2, m2, d2 := d.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
