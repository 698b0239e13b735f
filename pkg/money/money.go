// Package money holds the fixed-point amount conventions used across the
// ledger. Amounts are zero-decimal: every value is a whole number of the
// currency's minor unit, carried as decimal.Decimal so arithmetic never
// drifts the way float64 does.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrNegativeAmount = errors.New("amount must not be negative")

// Amount is the module-wide alias for a minor-unit monetary value.
type Amount = decimal.Decimal

// Zero is the additive identity, exported for readability at call sites.
var Zero = decimal.Zero

// FromInt builds an amount from whole minor units.
func FromInt(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// Parse accepts a decimal string and normalizes it to the minor unit.
// Fractional minor units are rejected rather than silently rounded.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if !d.Equal(d.Truncate(0)) {
		return decimal.Zero, fmt.Errorf("amount %q has fractional minor units", s)
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return d, nil
}

// FromFloat converts a JSON float64 into a whole-unit amount. Request DTOs
// arrive as float64; validation upstream guarantees the value is integral,
// the rounding here only strips float noise.
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(0)
}

// RoundMinor rounds half away from zero to the minor unit.
func RoundMinor(d decimal.Decimal) decimal.Decimal { return d.Round(0) }

// IsPositive reports whether the amount is strictly greater than zero.
func IsPositive(d decimal.Decimal) bool { return d.Sign() > 0 }

// SplitInstallments divides total into n periodic installments. The first
// n-1 installments are the rounded even share; the final installment absorbs
// the rounding remainder so the parts always sum back to total exactly.
func SplitInstallments(total decimal.Decimal, n int) (even, final decimal.Decimal, err error) {
	if n <= 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("installment count must be positive, got %d", n)
	}
	if total.IsNegative() {
		return decimal.Zero, decimal.Zero, ErrNegativeAmount
	}
	periods := decimal.NewFromInt(int64(n))
	even = RoundMinor(total.Div(periods))
	final = total.Sub(even.Mul(decimal.NewFromInt(int64(n - 1))))
	if final.IsNegative() {
		// Half-up rounding can overshoot tiny totals (3 over 5 periods).
		// Floor the even share so the remainder stays non-negative.
		even = total.Div(periods).Floor()
		final = total.Sub(even.Mul(decimal.NewFromInt(int64(n - 1))))
	}
	return even, final, nil
}
