// Package money provides precise decimal arithmetic for monetary values
// using big.Rat. Values are stored as rational numbers to avoid
// floating-point precision issues in cart totals and revenue sums.
package money

import (
	"fmt"
	"math/big"
)

// Money represents a monetary value backed by a rational number.
type Money struct {
	rat *big.Rat
}

// New creates a new Money instance from numerator and denominator.
// Example: New(249900, 100) represents $2499.00
func New(numerator, denominator int64) (*Money, error) {
	if denominator == 0 {
		return nil, fmt.Errorf("denominator cannot be zero")
	}

	return &Money{rat: big.NewRat(numerator, denominator)}, nil
}

// Zero returns a Money instance with value zero.
func Zero() *Money {
	return &Money{rat: big.NewRat(0, 1)}
}

// Parse creates a Money instance from a decimal string such as "12.50".
// Fractional notation ("25/2") is also accepted, which is what Marshal
// emits for lossless round-trips.
func Parse(s string) (*Money, error) {
	rat, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid money value %q", s)
	}
	return &Money{rat: rat}, nil
}

// MustParse is Parse that panics on error, for constants and tests.
func MustParse(s string) *Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromRat creates a Money instance from a big.Rat.
func FromRat(rat *big.Rat) *Money {
	if rat == nil {
		return Zero()
	}
	return &Money{rat: new(big.Rat).Set(rat)}
}

// Numerator returns the numerator of the rational number.
func (m *Money) Numerator() int64 {
	return m.rat.Num().Int64()
}

// Denominator returns the denominator of the rational number.
func (m *Money) Denominator() int64 {
	return m.rat.Denom().Int64()
}

// Add adds two Money values and returns a new Money instance.
func (m *Money) Add(other *Money) *Money {
	result := new(big.Rat).Add(m.rat, other.rat)
	return &Money{rat: result}
}

// Subtract subtracts another Money value and returns a new Money instance.
func (m *Money) Subtract(other *Money) *Money {
	result := new(big.Rat).Sub(m.rat, other.rat)
	return &Money{rat: result}
}

// MultiplyInt multiplies this Money value by an integer quantity.
func (m *Money) MultiplyInt(n int64) *Money {
	result := new(big.Rat).Mul(m.rat, big.NewRat(n, 1))
	return &Money{rat: result}
}

// MultiplyByRat multiplies this Money value by a rational number.
func (m *Money) MultiplyByRat(rat *big.Rat) *Money {
	result := new(big.Rat).Mul(m.rat, rat)
	return &Money{rat: result}
}

// DivideInt divides this Money value by an integer count.
func (m *Money) DivideInt(n int64) (*Money, error) {
	if n == 0 {
		return nil, fmt.Errorf("cannot divide by zero")
	}
	result := new(big.Rat).Quo(m.rat, big.NewRat(n, 1))
	return &Money{rat: result}, nil
}

// IsZero returns true if the money value is zero.
func (m *Money) IsZero() bool {
	return m.rat.Sign() == 0
}

// IsNegative returns true if the money value is negative.
func (m *Money) IsNegative() bool {
	return m.rat.Sign() < 0
}

// IsPositive returns true if the money value is positive.
func (m *Money) IsPositive() bool {
	return m.rat.Sign() > 0
}

// LessThan returns true if this Money value is less than another.
func (m *Money) LessThan(other *Money) bool {
	return m.rat.Cmp(other.rat) < 0
}

// GreaterThan returns true if this Money value is greater than another.
func (m *Money) GreaterThan(other *Money) bool {
	return m.rat.Cmp(other.rat) > 0
}

// Equals returns true if this Money value equals another.
func (m *Money) Equals(other *Money) bool {
	return m.rat.Cmp(other.rat) == 0
}

// Float64 returns an approximate float64 representation (display only).
func (m *Money) Float64() float64 {
	f, _ := m.rat.Float64()
	return f
}

// String returns the value formatted to exactly two decimal places.
func (m *Money) String() string {
	return m.rat.FloatString(2)
}

// Copy creates a deep copy of this Money instance.
func (m *Money) Copy() *Money {
	return &Money{rat: new(big.Rat).Set(m.rat)}
}

// MarshalJSON encodes the value as a quoted rational string ("51/2").
// RatString preserves the exact value, unlike a fixed-precision decimal.
func (m *Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.rat.RatString() + `"`), nil
}

// UnmarshalJSON decodes a quoted rational or decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("money must be a JSON string, got %s", string(data))
	}
	rat, ok := new(big.Rat).SetString(string(data[1 : len(data)-1]))
	if !ok {
		return fmt.Errorf("invalid money value %s", string(data))
	}
	m.rat = rat
	return nil
}
