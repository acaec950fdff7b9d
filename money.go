package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds to two decimal places using round-half-to-even.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}

// FormatMoney renders d with exactly two decimal digits. A positive width
// right-aligns the result by left-padding with spaces.
func FormatMoney(d decimal.Decimal, width int) string {
	s := Round2(d).StringFixed(2)
	if width > len(s) {
		s = strings.Repeat(" ", width-len(s)) + s
	}
	return s
}

// FormatQuantity renders d with up to three decimal digits, trailing zeros
// and a dangling decimal point stripped. Values that round to zero render
// as "0".
func FormatQuantity(d decimal.Decimal) string {
	q := d.RoundBank(3)
	if q.IsZero() {
		return "0"
	}
	s := q.StringFixed(3)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// SumMoney accumulates values exactly and rounds once at the end. Partial
// sums are never rounded, so the result cannot drift from the true sum by
// more than the final half-to-even rounding step.
func SumMoney(values []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return Round2(sum)
}

// ParseDecimal parses s as a decimal number. Invalid input yields zero so
// that a bad row still renders with visible zeros instead of failing the
// whole document.
func ParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
