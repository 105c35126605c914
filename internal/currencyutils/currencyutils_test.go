package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		amountStr string
		expected  decimal.Decimal
		hasError  bool
	}{
		{"Empty string", "", decimal.Zero, false},
		{"Blank string", "   ", decimal.Zero, false},
		{"Simple decimal", "123.45", decimal.RequireFromString("123.45"), false},
		{"Negative decimal", "-123.45", decimal.RequireFromString("-123.45"), false},
		{"Integer", "100", decimal.NewFromInt(100), false},
		{"With comma decimal separator", "123,45", decimal.RequireFromString("123.45"), false},
		{"With thousand separator (comma)", "1,234.56", decimal.RequireFromString("1234.56"), false},
		{"With thousand separator (apostrophe)", "1'234.56", decimal.RequireFromString("1234.56"), false},
		{"European format", "1.234,56", decimal.RequireFromString("1234.56"), false},
		{"With currency symbol (EUR)", "€123.45", decimal.RequireFromString("123.45"), false},
		{"With currency symbol (USD)", "$123.45", decimal.RequireFromString("123.45"), false},
		{"With currency code", "CHF 123.45", decimal.RequireFromString("123.45"), false},
		{"With spaces", "  123.45  ", decimal.RequireFromString("123.45"), false},
		{"With trailing zeros", "123.00", decimal.NewFromInt(123), false},
		{"Single dot before three digits", "1.234", decimal.RequireFromString("1.234"), false},
		{"Single comma before three digits", "1,234", decimal.RequireFromString("1.234"), false},
		{"Three decimals with comma", "4,505", decimal.RequireFromString("4.505"), false},
		{"Three decimals with dot", "4.505", decimal.RequireFromString("4.505"), false},
		{"Repeated comma thousands", "1,234,567", decimal.NewFromInt(1234567), false},
		{"Repeated dot thousands", "1.234.567", decimal.NewFromInt(1234567), false},
		{"Malformed decimal", "123.45.67", decimal.Zero, true},
		{"Non-numeric", "abc", decimal.Zero, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParseAmount(tc.amountStr)

			if tc.hasError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.True(t, tc.expected.Equal(result), "Expected %s but got %s", tc.expected.String(), result.String())
			}
		})
	}
}

func TestStandardizeAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Simple decimal", "123.45", "123.45"},
		{"Negative decimal", "-123.45", "-123.45"},
		{"With comma decimal separator", "123,45", "123.45"},
		{"With thousand separator (comma)", "1,234.56", "1234.56"},
		{"With thousand separator (apostrophe)", "1'234.56", "1234.56"},
		{"European format", "1.234,56", "1234.56"},
		{"With currency code", "CHF 123.45", "123.45"},
		{"Lowercase currency code", "chf 12", "12"},
		{"Multiple separators", "1,234,567.89", "1234567.89"},
		{"European multiple separators", "1.234.567,89", "1234567.89"},
		{"Single comma is decimal", "1,234", "1.234"},
		{"Single dot is decimal", "1.234", "1.234"},
		{"Comma with three decimals", "4,505", "4.505"},
		{"Repeated commas as thousands separator", "1,234,567", "1234567"},
		{"Dots as thousands separator", "1.234.567", "1234567"},
		{"Euro symbol and European format", "€1.234,56", "1234.56"},
		{"Irregular dots kept", "123.45.67", "123.45.67"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StandardizeAmount(tc.input))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		expected string
	}{
		{"1234.5", "", "1234.50"},
		{"1234.567", "EUR", "€1234.57"},
		{"10", "usd", "$10.00"},
		{"10", "GBP", "£10.00"},
		{"10", "JPY", "¥10.00"},
		{"10", "CHF", "CHF 10.00"},
		{"10", "sek", "SEK 10.00"},
	}

	for _, tc := range tests {
		t.Run(tc.currency+tc.amount, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatAmount(decimal.RequireFromString(tc.amount), tc.currency))
		})
	}
}
