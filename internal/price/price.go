// Package price implements the fixed-point monetary scalar used to key
// the order book. Binary floating point cannot serve as a map key, so
// every price that ever touches a book or an index is a Price.
package price

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidPrice is returned when a price is non-finite or negative.
var ErrInvalidPrice = errors.New("price: invalid value")

// cents is the number of ticks per unit. The book only ever deals in
// hundredths, matching the source's Price(double) constructor.
const cents = 100

// Price is an exact integer count of ticks (hundredths of a unit).
type Price int64

// FromFloat builds a Price from a real number, rounding half-up at cent
// precision: value = floor(x*100 + 0.5). The multiply-and-round happens
// in decimal space (via shopspring/decimal) rather than in float64, so
// boundary values such as 1.005 round the way a human reading the
// decimal digits would expect, instead of whichever way the nearest
// float64 representation happens to fall.
func FromFloat(x float64) (Price, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPrice, x)
	}
	if x < 0 {
		return 0, fmt.Errorf("%w: negative price %v", ErrInvalidPrice, x)
	}

	scaled := decimal.NewFromFloat(x).Mul(decimal.NewFromInt(cents)).Round(0)
	return Price(scaled.IntPart()), nil
}

// MustFromFloat is FromFloat for callers (tests, literals) that already
// know the value is valid.
func MustFromFloat(x float64) Price {
	p, err := FromFloat(x)
	if err != nil {
		panic(err)
	}
	return p
}

// Float64 converts back to a real number for display only. Never use
// this for comparisons or as a map key.
func (p Price) Float64() float64 {
	return float64(p) / cents
}

func (p Price) String() string {
	return fmt.Sprintf("%.2f", p.Float64())
}

// Less reports whether p sorts before other in ascending price order.
func (p Price) Less(other Price) bool {
	return p < other
}
