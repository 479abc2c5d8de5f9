// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with a currency symbol and thousands
// separators. Whole amounts drop the cents: 1234.5 -> "$1,234.50",
// 1000 -> "$1,000".
func FormatMoney(v float64, symbol string) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole := d.Truncate(0)
	out := sign + symbol + FormatNumber(whole.IntPart())
	if cents := d.Sub(whole).Shift(2).IntPart(); cents != 0 {
		out += fmt.Sprintf(".%02d", cents)
	}
	return out
}

// FormatCompactMoney abbreviates large amounts: 12500 -> "$12.5K".
func FormatCompactMoney(v float64, symbol string) string {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%s%.1fM", symbol, v/1_000_000)
	case abs >= 10_000:
		return fmt.Sprintf("%s%.1fK", symbol, v/1_000)
	default:
		return FormatMoney(v, symbol)
	}
}

// FormatScore formats a credit score as a whole number.
func FormatScore(v float64) string {
	return strconv.FormatInt(decimal.NewFromFloat(v).Round(0).IntPart(), 10)
}

// ParseAmount parses a user-entered amount such as "1,250.50" or "$900".
func ParseAmount(s, symbol string) (float64, error) {
	clean := strings.TrimSpace(s)
	if symbol != "" {
		clean = strings.TrimPrefix(clean, symbol)
	}
	clean = strings.ReplaceAll(clean, ",", "")
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return d.Round(2).InexactFloat64(), nil
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 percentage.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDelta formats the change between two amounts with an explicit sign.
func FormatDelta(current, previous float64, symbol string) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoney(delta, symbol)
	}
	return "-" + FormatMoney(-delta, symbol)
}

// FormatAge returns a short "how long ago" string.
func FormatAge(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
