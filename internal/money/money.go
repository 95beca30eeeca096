// internal/money/money.go
package money

import (
	"fmt"
	"strconv"
	"strings"
)

// Amounts move through the system as minor-unit integers (kobo) so that
// no component ever does floating-point arithmetic on money. These helpers
// are the only place a minor-unit value becomes a display string.

const minorPerMajor = 100

var symbols = map[string]string{
	"NGN": "₦",
}

// FormatMinor converts a minor-unit amount into a display string, e.g.
// 45_000_000 kobo -> "₦450,000". Whole amounts drop the decimals; anything
// with a fractional part keeps two. Currencies without a known symbol fall
// back to the ISO code, e.g. "USD 1,250.50".
func FormatMinor(amountMinor int64, currency string) string {
	negative := amountMinor < 0
	if negative {
		amountMinor = -amountMinor
	}

	major := amountMinor / minorPerMajor
	frac := amountMinor % minorPerMajor

	number := groupThousands(major)
	if frac != 0 {
		number = fmt.Sprintf("%s.%02d", number, frac)
	}

	sign := ""
	if negative {
		sign = "-"
	}

	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = "NGN"
	}
	if symbol, ok := symbols[code]; ok {
		return sign + symbol + number
	}
	return sign + code + " " + number
}

// Major converts a minor-unit amount to major units for collaborators that
// insist on major units (e.g. the SMS text).
func Major(amountMinor int64) float64 {
	return float64(amountMinor) / minorPerMajor
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
