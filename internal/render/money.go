package render

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Money formats amounts with a currency symbol and locale digit grouping.
type Money struct {
	symbol  string
	printer *message.Printer
}

// NewMoney builds a formatter. Unknown locales fall back to English.
func NewMoney(symbol, locale string) *Money {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.English
	}
	return &Money{symbol: symbol, printer: message.NewPrinter(tag)}
}

// Amount renders d with two decimals, e.g. "Rs. 1,234.50".
func (m *Money) Amount(d decimal.Decimal) string {
	return strings.TrimSpace(m.symbol + " " + m.Plain(d))
}

// Plain renders d with grouping and two decimals and no symbol.
func (m *Money) Plain(d decimal.Decimal) string {
	return m.printer.Sprint(number.Decimal(d.Round(2).InexactFloat64(), number.Scale(2)))
}
