// Package revenue divides a reservation total between the paying customer's
// hold, the venue operator and the platform fee account.
package revenue

import (
	"arena-booking/internal/pkg/errs"
	"arena-booking/internal/pkg/money"

	"github.com/shopspring/decimal"
)

var ErrInvalidFeeRate = errs.New("fee rate must be within [0, 1]")

// FeeRate is the platform's cut of every settled reservation. The zero value is a 0% rate.
type FeeRate struct {
	value decimal.Decimal
}

func NewFeeRate(d decimal.Decimal) (FeeRate, error) {
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
		return FeeRate{}, errs.Wrapf(ErrInvalidFeeRate, "got %s", d.String())
	}
	return FeeRate{value: d}, nil
}

func ParseFeeRate(s string) (FeeRate, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return FeeRate{}, errs.Mark(err, ErrInvalidFeeRate)
	}
	return NewFeeRate(d)
}

func MustFeeRate(s string) FeeRate {
	r, err := ParseFeeRate(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Decode lets envconfig validate the rate while loading configuration.
func (r *FeeRate) Decode(value string) error {
	parsed, err := ParseFeeRate(value)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r FeeRate) Decimal() decimal.Decimal { return r.value }
func (r FeeRate) String() string           { return r.value.String() }

type Shares struct {
	// Player is the amount the payer's hold represents.
	Player   decimal.Decimal
	Operator decimal.Decimal
	Platform decimal.Decimal
}

// Split never loses a cent: Operator + Platform always equals total.
func Split(total decimal.Decimal, rate FeeRate) Shares {
	platform := money.Round(total.Mul(rate.value))
	return Shares{
		Player:   total,
		Operator: total.Sub(platform),
		Platform: platform,
	}
}
