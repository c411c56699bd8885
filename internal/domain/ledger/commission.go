package ledger

import (
	"github.com/shopspring/decimal"
)

// DefaultCommissionRate is the adhat percentage charged on every
// merchant-linked trade line.
var DefaultCommissionRate = decimal.NewFromFloat(2.0)

// Commission returns the commission earned on a trade amount at the given
// percentage rate, rounded to 2 decimal places. Rounding is half away from
// zero (shopspring's Round), so Commission(33.33, 2) == 0.67.
//
// The function is pure and performs no validation: a negative trade amount
// yields a negative commission.
func Commission(tradeAmount, rate decimal.Decimal) decimal.Decimal {
	return tradeAmount.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
}

// DefaultCommission returns the commission at the default rate.
func DefaultCommission(tradeAmount decimal.Decimal) decimal.Decimal {
	return Commission(tradeAmount, DefaultCommissionRate)
}
