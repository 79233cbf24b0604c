// Package money represents amounts as integer minor currency units (cents)
// so that sums over splits and balances are exact. Floating-point values are
// only accepted at the API boundary and converted here.
package money

import (
	"fmt"
	"math"
)

// Tolerance is the margin used when comparing float input from the API
// (e.g. percentage sums) before conversion to cents.
const Tolerance = 0.01

// Cents is an amount in minor currency units.
type Cents int64

// FromFloat converts a major-unit amount (e.g. 12.345) to cents,
// rounding half away from zero.
func FromFloat(amount float64) Cents {
	return Cents(math.Round(amount * 100))
}

// Float64 converts back to major units for JSON responses.
func (c Cents) Float64() float64 {
	return float64(c) / 100
}

// Abs returns the absolute value.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// String formats the amount in major units with two decimals.
func (c Cents) String() string {
	return fmt.Sprintf("%.2f", c.Float64())
}
