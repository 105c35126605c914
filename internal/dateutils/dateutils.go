// Package dateutils provides common date operations used throughout the application.
// Ledger dates have day granularity: every parsed value is truncated to midnight UTC.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02.01.2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutFull     = "2006-01-02 15:04:05"
)

var whitespace = regexp.MustCompile(`\s+`)

// ParseDay parses dateStr with the given layout and truncates it to a calendar day.
// An empty layout means DateLayoutISO.
func ParseDay(dateStr, layout string) (time.Time, error) {
	if layout == "" {
		layout = DateLayoutISO
	}
	clean := CleanDateString(dateStr)
	if clean == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	t, err := time.Parse(layout, clean)
	if err != nil {
		// Exports sometimes carry a time component after the date
		if full, ferr := time.Parse(DateLayoutFull, clean); ferr == nil && layout == DateLayoutISO {
			return TruncateToDay(full), nil
		}
		return time.Time{}, fmt.Errorf("unable to parse date %q with layout %q", dateStr, layout)
	}
	return TruncateToDay(t), nil
}

// FormatDay formats a date with the given layout (DateLayoutISO when empty).
func FormatDay(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// TruncateToDay drops the time-of-day component and normalizes to UTC.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	return whitespace.ReplaceAllString(dateStr, " ")
}

// CompareDates compares two dates by calendar day and returns:
//
//	-1 if date1 is before date2
//	 0 if date1 is equal to date2
//	 1 if date1 is after date2
func CompareDates(date1, date2 time.Time) int {
	date1 = TruncateToDay(date1)
	date2 = TruncateToDay(date2)

	if date1.Before(date2) {
		return -1
	} else if date1.After(date2) {
		return 1
	}
	return 0
}
