package report

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const (
	currencyFormat = "#,###.##"
	percentFormat  = "#,###.#"
)

// Formatter renders report amounts for display.
type Formatter struct {
	CurrencySymbol string
}

// Currency formats an amount with thousands separators and two decimals.
func (f Formatter) Currency(v decimal.Decimal) string {
	return f.CurrencySymbol + humanize.FormatFloat(currencyFormat, v.Round(2).InexactFloat64())
}

// Percent formats a percentage with one decimal.
func (f Formatter) Percent(v decimal.Decimal) string {
	return humanize.FormatFloat(percentFormat, v.Round(1).InexactFloat64()) + "%"
}

// YesNo renders a flag the way the breakdown shows it.
func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
