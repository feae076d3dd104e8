// Package format renders domain values for the terminal. Rounding happens
// here only; amounts are kept exact everywhere else.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Money formats amounts with two decimals and locale grouping.
type Money struct {
	printer *message.Printer
	symbol  string
}

// NewMoney builds a formatter for the given BCP 47 language tag. Unknown
// tags fall back to English.
func NewMoney(lang, symbol string) *Money {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Money{printer: message.NewPrinter(tag), symbol: symbol}
}

// Format renders d with two decimals. The sign goes before the symbol.
func (m *Money) Format(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	f, _ := d.Abs().Float64()
	return sign + m.symbol + m.printer.Sprint(number.Decimal(f, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
