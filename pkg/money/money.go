// Package money holds the rounding and formatting rules used for amounts
// shown to the operator and printed on tickets.
package money

import (
	"github.com/shopspring/decimal"
)

// Places is the number of decimals amounts are displayed with.
const Places = 2

var hundred = decimal.NewFromInt(100)

// Round rounds half away from zero at two decimals, which is half-up for
// the non-negative amounts a cart produces.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Format renders an amount with exactly two decimals.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// Percent returns pct percent of amount, unrounded.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// Remaining returns the factor (1 - pct/100).
func Remaining(pct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Sub(pct.Div(hundred))
}
