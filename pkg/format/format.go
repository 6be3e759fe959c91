// Package format renders dashboard figures for display.
package format

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency renders an amount in major units as US dollars, e.g. $1,234.50
func Currency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	return sign + "$" + group(whole) + "." + frac
}

// CurrencyFromCents renders a minor-unit amount as US dollars
func CurrencyFromCents(cents int64) string {
	return Currency(decimal.New(cents, -2).InexactFloat64())
}

// Number renders an integer with thousands separators
func Number(n int64) string {
	if n < 0 {
		return "-" + group(strconv.FormatInt(-n, 10))
	}
	return group(strconv.FormatInt(n, 10))
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
