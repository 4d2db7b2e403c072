package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD formats an amount as a string like "$1,234.50".
// Uses comma as thousands separator and always two cents digits.
func FormatUSD(amount decimal.Decimal) string {
	amount = amount.Round(2)
	neg := amount.IsNegative()
	s := amount.Abs().StringFixed(2)

	whole, cents := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, cents = s[:i], s[i:]
	}

	var b strings.Builder
	b.Grow(len(s) + len(whole)/3 + 2)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(whole) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(whole[:rem])
	for i := rem; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}
	b.WriteString(cents)

	return b.String()
}
