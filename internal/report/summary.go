// Package report summarizes the ledger for the stats command.
package report

import (
	"sort"

	"fjacquet/ledger-import/internal/dateutils"
	"fjacquet/ledger-import/internal/models"

	"github.com/shopspring/decimal"
)

// DescriptionTotal aggregates records sharing a description.
type DescriptionTotal struct {
	Description string          `json:"description" yaml:"description"`
	Count       int             `json:"count" yaml:"count"`
	Spent       decimal.Decimal `json:"spent" yaml:"spent"`
}

// CategoryTotal aggregates one category.
type CategoryTotal struct {
	Name        string             `json:"name" yaml:"name"`
	Count       int                `json:"count" yaml:"count"`
	Spent       decimal.Decimal    `json:"spent" yaml:"spent"`
	Received    decimal.Decimal    `json:"received" yaml:"received"`
	TopSpending []DescriptionTotal `json:"top_spending,omitempty" yaml:"top_spending,omitempty"`
}

// Summary is an aggregate view of the ledger.
type Summary struct {
	Records       int             `json:"records" yaml:"records"`
	Categorized   int             `json:"categorized" yaml:"categorized"`
	Uncategorized int             `json:"uncategorized" yaml:"uncategorized"`
	FirstDate     string          `json:"first_date,omitempty" yaml:"first_date,omitempty"`
	LastDate      string          `json:"last_date,omitempty" yaml:"last_date,omitempty"`
	TotalSpent    decimal.Decimal `json:"total_spent" yaml:"total_spent"`
	TotalReceived decimal.Decimal `json:"total_received" yaml:"total_received"`
	Categories    []CategoryTotal `json:"categories" yaml:"categories"`

	// Currency is only used when rendering text.
	Currency string `json:"-" yaml:"-"`
}

// Summarize aggregates the ledger per category. Categories are sorted by
// name with the uncategorized bucket last; each carries its topN
// descriptions by amount spent (none when topN <= 0).
func Summarize(ledger models.Ledger, topN int) Summary {
	s := Summary{TotalSpent: decimal.Zero, TotalReceived: decimal.Zero}
	if ledger.IsEmpty() {
		return s
	}

	type bucket struct {
		total CategoryTotal
		descs map[string]*DescriptionTotal
	}
	buckets := make(map[string]*bucket)

	records := ledger.Records()
	first, last := records[0].Date, records[0].Date
	for _, r := range records {
		s.Records++
		name := r.Category
		if r.IsCategorized() {
			s.Categorized++
		} else {
			s.Uncategorized++
			name = models.CategoryUncategorized
		}
		if r.Date.Before(first) {
			first = r.Date
		}
		if r.Date.After(last) {
			last = r.Date
		}
		s.TotalSpent = s.TotalSpent.Add(r.AmountSpent)
		s.TotalReceived = s.TotalReceived.Add(r.AmountReceived)

		b, ok := buckets[name]
		if !ok {
			b = &bucket{
				total: CategoryTotal{Name: name, Spent: decimal.Zero, Received: decimal.Zero},
				descs: make(map[string]*DescriptionTotal),
			}
			buckets[name] = b
		}
		b.total.Count++
		b.total.Spent = b.total.Spent.Add(r.AmountSpent)
		b.total.Received = b.total.Received.Add(r.AmountReceived)

		if r.IsSpending() {
			d, ok := b.descs[r.Description]
			if !ok {
				d = &DescriptionTotal{Description: r.Description, Spent: decimal.Zero}
				b.descs[r.Description] = d
			}
			d.Count++
			d.Spent = d.Spent.Add(r.AmountSpent)
		}
	}
	s.FirstDate = dateutils.FormatDay(first, dateutils.DateLayoutISO)
	s.LastDate = dateutils.FormatDay(last, dateutils.DateLayoutISO)

	for _, b := range buckets {
		b.total.TopSpending = topDescriptions(b.descs, topN)
		s.Categories = append(s.Categories, b.total)
	}
	sort.Slice(s.Categories, func(i, j int) bool {
		a, b := s.Categories[i].Name, s.Categories[j].Name
		if (a == models.CategoryUncategorized) != (b == models.CategoryUncategorized) {
			return b == models.CategoryUncategorized
		}
		return a < b
	})
	return s
}

func topDescriptions(descs map[string]*DescriptionTotal, n int) []DescriptionTotal {
	if n <= 0 || len(descs) == 0 {
		return nil
	}
	out := make([]DescriptionTotal, 0, len(descs))
	for _, d := range descs {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Spent.Cmp(out[j].Spent); c != 0 {
			return c > 0
		}
		return out[i].Description < out[j].Description
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
