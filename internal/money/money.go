// Package money handles currency amounts as integer cents so that rents
// and payment totals never go through binary floating point.  Amounts on
// the wire are decimal strings with at most two fraction digits
// ("1000", "1000.5", "1000.50"); in the database they are BIGINT cents.
package money

import (
	"fmt"
	"strings"
)

// ParseCents converts a decimal string into cents.  It accepts an
// optional leading minus, up to two fraction digits, and rejects
// everything else (including empty input, exponents and thousands
// separators).  "1000.50" -> 100050.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}
	// 15 whole digits keep the cents value far from the int64 limit;
	// anything longer would silently wrap in the loop below.
	if len(whole) > 15 {
		return 0, fmt.Errorf("amount %q is too large", s)
	}
	var cents int64
	for _, ch := range whole {
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		cents = cents*10 + int64(ch-'0')
	}
	cents *= 100
	// Pad the fraction to two digits: ".5" means 50 cents.
	mult := int64(10)
	for _, ch := range frac {
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
		cents += int64(ch-'0') * mult
		mult /= 10
	}
	if neg {
		cents = -cents
	}
	return cents, nil
}

// FormatCents renders cents as a decimal string with exactly two
// fraction digits.  100050 -> "1000.50".
func FormatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
