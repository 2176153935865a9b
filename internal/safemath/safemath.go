// Package safemath provides checked arithmetic over uint64.
//
// Every counter mutation in the ledger goes through these functions; they
// never wrap or saturate. An overflow, underflow, or zero divisor aborts the
// enclosing operation with a sentinel error the caller can match with
// errors.Is.
package safemath

import (
	"errors"
	"math"
)

var (
	// ErrOverflow is returned when the true result exceeds math.MaxUint64
	ErrOverflow = errors.New("arithmetic overflow")

	// ErrUnderflow is returned when subtraction would produce a negative value
	ErrUnderflow = errors.New("arithmetic underflow")

	// ErrDivisionByZero is returned when dividing by zero
	ErrDivisionByZero = errors.New("division by zero")
)

// Add returns a + b, or ErrOverflow if the sum does not fit in a uint64.
// Overflow is detectable because the wrapped sum is less than either operand.
func Add(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Sub returns a - b, or ErrUnderflow if b > a.
func Sub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

// Mul returns a * b, or ErrOverflow if the product does not fit in a uint64.
// A zero multiplicand short-circuits to 0 before the division check.
func Mul(a, b uint64) (uint64, error) {
	if a == 0 {
		return 0, nil
	}
	product := a * b
	if product/a != b {
		return 0, ErrOverflow
	}
	return product, nil
}

// Div returns the truncated quotient a / b, or ErrDivisionByZero if b == 0.
// The zero divisor is checked explicitly rather than left to the runtime.
func Div(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

// MaxUint64 is the largest representable value, re-exported so callers
// exercising the overflow boundaries don't need to import math.
const MaxUint64 = math.MaxUint64
