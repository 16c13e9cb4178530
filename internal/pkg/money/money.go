// Package money holds the fixed-scale decimal rules shared by every component
// that touches amounts.
package money

import (
	"arena-booking/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits every stored amount carries.
const Scale = 2

var ErrInvalidAmount = errs.New("invalid amount")

// Parse reads a non-negative decimal string with at most Scale fractional digits.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errs.Mark(err, ErrInvalidAmount)
	}
	if d.IsNegative() || !HasScale(d) {
		return decimal.Zero, errs.Wrapf(ErrInvalidAmount, "amount %q", s)
	}
	return d, nil
}

// ValidatePositive rejects zero, negative and over-precise amounts.
func ValidatePositive(d decimal.Decimal) error {
	if !d.IsPositive() {
		return errs.Wrapf(ErrInvalidAmount, "amount %s must be positive", d.String())
	}
	if !HasScale(d) {
		return errs.Wrapf(ErrInvalidAmount, "amount %s has more than %d fractional digits", d.String(), Scale)
	}
	return nil
}

func HasScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(Scale))
}

// Round rounds half away from zero to Scale digits.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

func String(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}

func Sum(ds ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, d := range ds {
		total = total.Add(d)
	}
	return total
}
