// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney rounds to two decimal places and adds thousands separators.
// e.g., 1234567.891 -> "1,234,567.89", -5.5 -> "-5.50"
func FormatMoney(amount float64) string {
	fixed := decimal.NewFromFloat(amount).Round(2).StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		// Beyond int64; leave the integer part ungrouped.
		return sign(neg) + fixed
	}
	if n == 0 && frac == "00" {
		neg = false
	}
	return sign(neg) + FormatNumber(n) + "." + frac
}

// FormatCurrency prefixes FormatMoney with a currency symbol.
// e.g., ("RM", 1300000) -> "RM 1,300,000.00"
func FormatCurrency(symbol string, amount float64) string {
	if symbol == "" {
		return FormatMoney(amount)
	}
	return symbol + " " + FormatMoney(amount)
}

func sign(neg bool) string {
	if neg {
		return "-"
	}
	return ""
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

// FormatRate formats a fractional rate as a percentage with two decimals.
// e.g., 0.052 -> "5.20%"
func FormatRate(f float64) string {
	return fmt.Sprintf("%.2f%%", f*100)
}

// FormatYears formats a horizon length.
func FormatYears(years int) string {
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", years)
}
