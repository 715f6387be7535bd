// Package money formats shilling amounts for labels and receipts.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Whole formats n with comma-grouped thousands, e.g. 1,234,567.
func Whole(n int64) string {
	return printer.Sprintf("%d", n)
}

// Fixed2 rounds to two decimals and groups thousands, e.g. 11,600.00.
func Fixed2(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	abs := rounded.Abs()
	_, frac, _ := strings.Cut(abs.StringFixed(2), ".")

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + Whole(abs.IntPart()) + "." + frac
}
