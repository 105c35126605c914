package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	tests := []struct {
		name     string
		dateStr  string
		layout   string
		expected time.Time
		wantErr  bool
	}{
		{"ISO format", "2024-01-05", DateLayoutISO, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), false},
		{"default layout", "2024-01-05", "", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), false},
		{"surrounding spaces", "  2024-01-05 ", "", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), false},
		{"time component dropped", "2024-01-05 13:45:00", "", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), false},
		{"European layout", "05.01.2024", DateLayoutEuropean, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), false},
		{"wrong layout", "05.01.2024", DateLayoutISO, time.Time{}, true},
		{"empty string", "", "", time.Time{}, true},
		{"garbage", "not a date", "", time.Time{}, true},
		{"impossible day", "2024-02-31", "", time.Time{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseDay(tc.dateStr, tc.layout)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestFormatDay(t *testing.T) {
	d := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-05", FormatDay(d, ""))
	assert.Equal(t, "05.01.2024", FormatDay(d, DateLayoutEuropean))
}

func TestCompareDates(t *testing.T) {
	morning := time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 1, 5, 20, 0, 0, 0, time.UTC)
	next := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, CompareDates(morning, evening))
	assert.Equal(t, -1, CompareDates(evening, next))
	assert.Equal(t, 1, CompareDates(next, morning))
}

func TestCleanDateString(t *testing.T) {
	assert.Equal(t, "2024-01-05 10:00", CleanDateString("  2024-01-05   10:00 "))
}
