// Package totals derives the monetary totals of a quotation from its line
// totals and adjustments. It is pure arithmetic: inputs are never rejected.
package totals

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Input carries everything the computation depends on.
type Input struct {
	LineTotals      []decimal.Decimal
	DiscountPercent decimal.Decimal
	Shipping        decimal.Decimal
	TaxPercent      decimal.Decimal
	RemoveTax       bool
}

// Totals is the canonical result. Only GrandTotal is rounded.
type Totals struct {
	SubTotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxableBase    decimal.Decimal
	TaxAmount      decimal.Decimal
	GrandTotal     decimal.Decimal
}

// Compute applies discount to the subtotal, tax to the discounted base and
// rounds subtotal - discount + shipping + tax to two places, half away from zero.
// Negative percentages are applied as given.
func Compute(in Input) Totals {
	subTotal := decimal.Zero
	for _, lt := range in.LineTotals {
		subTotal = subTotal.Add(lt)
	}

	discountAmount := subTotal.Mul(in.DiscountPercent).Div(hundred)
	taxableBase := subTotal.Sub(discountAmount)

	taxAmount := decimal.Zero
	if !in.RemoveTax {
		taxAmount = taxableBase.Mul(in.TaxPercent).Div(hundred)
	}

	grandTotal := Round2(subTotal.Sub(discountAmount).Add(in.Shipping).Add(taxAmount))

	return Totals{
		SubTotal:       subTotal,
		DiscountAmount: discountAmount,
		TaxableBase:    taxableBase,
		TaxAmount:      taxAmount,
		GrandTotal:     grandTotal,
	}
}

// LineTotal returns quantity × unitPrice.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// Round2 rounds to cents, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
