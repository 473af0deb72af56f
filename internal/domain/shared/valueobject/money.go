package valueobject

import (
	"github.com/shopspring/decimal"
)

// TaxRate is the fixed sales tax applied to every order
var TaxRate = decimal.NewFromFloat(0.10)

var (
	hundred = decimal.NewFromInt(100)
	taxMul  = decimal.NewFromInt(1).Add(TaxRate)
)

// LineTotal returns unit price multiplied by quantity
func LineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// WithTax returns subtotal × (1 + TaxRate), rounded to cents
func WithTax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxMul).Round(2)
}

// WithoutTax returns total ÷ (1 + TaxRate), rounded to cents
func WithoutTax(total decimal.Decimal) decimal.Decimal {
	return total.DivRound(taxMul, 2)
}

// TaxOn returns the tax portion for a subtotal, rounded to cents.
// For a subtotal in whole cents, subtotal + TaxOn(subtotal) == WithTax(subtotal).
func TaxOn(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate).Round(2)
}

// ApplyOffer returns price reduced by a percentage offer.
// A nil or zero offer returns price unchanged.
func ApplyOffer(price decimal.Decimal, offer *decimal.Decimal) decimal.Decimal {
	if offer == nil || offer.IsZero() {
		return price
	}
	factor := hundred.Sub(*offer).Div(hundred)
	return price.Mul(factor).Round(2)
}

// IsValidOffer reports whether an offer percentage lies within 0..100
func IsValidOffer(offer decimal.Decimal) bool {
	return !offer.IsNegative() && offer.LessThanOrEqual(hundred)
}
