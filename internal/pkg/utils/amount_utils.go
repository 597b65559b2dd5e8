package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseRawAmount converts a raw smallest-unit balance string and its decimal
// precision into a float amount. Example: raw="1234500000", decimals=9 => 1.2345.
// Returns an error when the raw string is not a valid integer.
func ParseRawAmount(raw string, decimals uint8) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid raw amount %q: %w", raw, err)
	}
	return d.Shift(-int32(decimals)).InexactFloat64(), nil
}

// FormatTokenBalance renders a raw smallest-unit balance as a human-readable
// decimal string, trimming trailing zeros from the fractional part.
// Example: raw="1234500000000000000", decimals=18 => "1.2345".
func FormatTokenBalance(raw string, decimals uint8) string {
	if raw == "" || raw == "0" {
		return "0"
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		// Not a valid integer string; echo it back rather than dropping data.
		return raw
	}
	s := d.Shift(-int32(decimals)).StringFixed(int32(decimals))
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// FormatUSDValue renders a USD value with two decimal places, or "N/A" when
// the value is unknown.
func FormatUSDValue(value *float64) string {
	if value == nil {
		return "N/A"
	}
	return decimal.NewFromFloat(*value).StringFixed(2)
}
