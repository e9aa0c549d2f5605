// Package numfmt formats quantities and money for display with locale-aware grouping.
package numfmt

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes money labels.
const CurrencySymbol = "₱"

var printer = message.NewPrinter(language.English)

// Units formats an integer quantity with thousands separators: 12345 -> "12,345".
func Units(n int) string {
	return printer.Sprintf("%d", n)
}

// Money formats an amount with two decimals and grouping: 1234.5 -> "₱1,234.50".
func Money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	if f < 0 {
		return "-" + CurrencySymbol + printer.Sprintf("%.2f", -f)
	}
	return CurrencySymbol + printer.Sprintf("%.2f", f)
}
