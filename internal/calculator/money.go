package calculator

import "github.com/shopspring/decimal"

// CurrencyPlaces is the number of decimal places of every externally visible amount.
const CurrencyPlaces = 2

// Tolerance is the rounding margin (one cent) below which a balance counts as settled.
var Tolerance = decimal.New(1, -CurrencyPlaces)

// MaxAmount caps a single expense or payment. Its cent value fits an int64 with room
// for the sums a ledger adds up.
var MaxAmount = decimal.New(1, 13)

// RoundAmount rounds to cents, half away from zero (2.345 -> 2.35, -2.345 -> -2.35).
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyPlaces)
}

// IsSettled reports whether d is within the tolerance of zero.
func IsSettled(d decimal.Decimal) bool {
	return d.Abs().LessThanOrEqual(Tolerance)
}
