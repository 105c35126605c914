// Package categorizer assigns categories to transactions by keyword matching
// against an ordered category map.
package categorizer

import (
	"fjacquet/ledger-import/internal/logging"
	"fjacquet/ledger-import/internal/models"
)

// Options tunes keyword matching.
type Options struct {
	CaseSensitive bool
	Policy        MatchPolicy
}

// DefaultOptions matches case-sensitively and lets the first keyword win.
func DefaultOptions() Options {
	return Options{CaseSensitive: true, Policy: FirstMatch}
}

// Result counts what a categorization pass did.
type Result struct {
	AlreadyCategorized int
	Categorized        int
	Uncategorized      int
}

// Categorizer fills the category of uncategorized records. The category map
// is read-only after construction and may be shared between calls.
type Categorizer struct {
	matcher keywordMatcher
	opts    Options
	logger  logging.Logger
}

// NewCategorizer creates a Categorizer over categories. A nil logger discards output.
func NewCategorizer(categories models.CategoryMap, opts Options, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	if opts.Policy == "" {
		opts.Policy = FirstMatch
	}
	return &Categorizer{
		matcher: newKeywordMatcher(categories, opts.CaseSensitive, opts.Policy),
		opts:    opts,
		logger:  logger,
	}
}

// Name returns the name of this strategy for logging and debugging.
func (c *Categorizer) Name() string {
	return "Keyword"
}

// Options returns the matching options in effect.
func (c *Categorizer) Options() Options {
	return c.opts
}

// Match looks description up in the category map.
func (c *Categorizer) Match(description string) (Match, bool) {
	return c.matcher.match(description)
}

// Categorize returns a copy of records where every uncategorized record got
// the matching category, or the uncategorized marker when nothing matched.
// Records that already carry a category are never changed.
func (c *Categorizer) Categorize(records []models.Transaction) ([]models.Transaction, Result) {
	var res Result
	out := make([]models.Transaction, len(records))
	copy(out, records)

	for i := range out {
		if out[i].IsCategorized() {
			res.AlreadyCategorized++
			continue
		}

		m, ok := c.matcher.match(out[i].Description)
		if !ok {
			out[i].Category = models.CategoryUncategorized
			res.Uncategorized++
			continue
		}

		out[i].Category = m.Category
		res.Categorized++
		c.logger.Debug("Transaction categorized using keyword matching",
			logging.F("strategy", c.Name()),
			logging.F(logging.FieldDescription, out[i].Description),
			logging.F(logging.FieldKeyword, m.Keyword),
			logging.F(logging.FieldCategory, m.Category),
		)
	}

	return out, res
}
