// Package validation checks ledgers and user-supplied options.
package validation

import (
	"fmt"
	"strings"

	"fjacquet/ledger-import/internal/dedup"
	"fjacquet/ledger-import/internal/models"
)

// Severity of a ledger issue.
type Severity string

const (
	// SeverityError marks a broken ledger invariant.
	SeverityError Severity = "error"
	// SeverityWarning marks something worth a look that imports tolerate.
	SeverityWarning Severity = "warning"
)

// Issue is one finding about a ledger record. Row is 1-based.
type Issue struct {
	Row      int
	Severity Severity
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("row %d: %s: %s", i.Row, i.Severity, i.Message)
}

// ValidateLedger checks the ledger invariants: newest-first order, no
// missing dates, no negative amounts and a category on every record.
// Identical records are reported as warnings since a bank may legitimately
// repeat a transaction within a day.
func ValidateLedger(ledger models.Ledger) []Issue {
	var issues []Issue
	seen := make(map[dedup.Fingerprint]int)

	records := ledger.Records()
	for i, r := range records {
		row := i + 1
		if r.Date.IsZero() {
			issues = append(issues, Issue{row, SeverityError, "missing date"})
		}
		if i > 0 && r.Date.After(records[i-1].Date) {
			issues = append(issues, Issue{row, SeverityError,
				fmt.Sprintf("dated %s, after the record above it (%s)",
					r.Date.Format("2006-01-02"), records[i-1].Date.Format("2006-01-02"))})
		}
		if r.AmountSpent.IsNegative() || r.AmountReceived.IsNegative() {
			issues = append(issues, Issue{row, SeverityError, "negative amount"})
		}
		if strings.TrimSpace(r.Category) == "" {
			issues = append(issues, Issue{row, SeverityError, "empty category"})
		}

		fp := dedup.FingerprintOf(r)
		if first, ok := seen[fp]; ok {
			issues = append(issues, Issue{row, SeverityWarning,
				fmt.Sprintf("identical to row %d", first)})
		} else {
			seen[fp] = row
		}
	}
	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// IsValidOutputFormat checks if the given report format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'text', 'json', 'yaml'", format)
	}
}
