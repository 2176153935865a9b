package safemath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/nft-ledger/internal/safemath"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name     string
		a        uint64
		b        uint64
		expected uint64
		err      error
	}{
		{
			name:     "simple addition",
			a:        1,
			b:        2,
			expected: 3,
		},
		{
			name:     "zero operands",
			a:        0,
			b:        0,
			expected: 0,
		},
		{
			name:     "max plus zero",
			a:        safemath.MaxUint64,
			b:        0,
			expected: safemath.MaxUint64,
		},
		{
			name: "max plus one overflows",
			a:    safemath.MaxUint64,
			b:    1,
			err:  safemath.ErrOverflow,
		},
		{
			name: "max plus max overflows",
			a:    safemath.MaxUint64,
			b:    safemath.MaxUint64,
			err:  safemath.ErrOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := safemath.Add(tt.a, tt.b)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSub(t *testing.T) {
	tests := []struct {
		name     string
		a        uint64
		b        uint64
		expected uint64
		err      error
	}{
		{
			name:     "simple subtraction",
			a:        5,
			b:        3,
			expected: 2,
		},
		{
			name:     "equal operands",
			a:        7,
			b:        7,
			expected: 0,
		},
		{
			name: "zero minus one underflows",
			a:    0,
			b:    1,
			err:  safemath.ErrUnderflow,
		},
		{
			name: "larger subtrahend underflows",
			a:    10,
			b:    11,
			err:  safemath.ErrUnderflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := safemath.Sub(tt.a, tt.b)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMul(t *testing.T) {
	tests := []struct {
		name     string
		a        uint64
		b        uint64
		expected uint64
		err      error
	}{
		{
			name:     "simple multiplication",
			a:        6,
			b:        7,
			expected: 42,
		},
		{
			name:     "zero multiplicand short-circuits",
			a:        0,
			b:        safemath.MaxUint64,
			expected: 0,
		},
		{
			name:     "zero multiplier",
			a:        safemath.MaxUint64,
			b:        0,
			expected: 0,
		},
		{
			name:     "max times one",
			a:        safemath.MaxUint64,
			b:        1,
			expected: safemath.MaxUint64,
		},
		{
			name: "max times max overflows",
			a:    safemath.MaxUint64,
			b:    safemath.MaxUint64,
			err:  safemath.ErrOverflow,
		},
		{
			name: "large operands overflow",
			a:    1 << 32,
			b:    1 << 32,
			err:  safemath.ErrOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := safemath.Mul(tt.a, tt.b)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestDiv(t *testing.T) {
	tests := []struct {
		name     string
		a        uint64
		b        uint64
		expected uint64
		err      error
	}{
		{
			name:     "simple division",
			a:        10,
			b:        3,
			expected: 3,
		},
		{
			name:     "zero dividend",
			a:        0,
			b:        5,
			expected: 0,
		},
		{
			name: "zero divisor",
			a:    1,
			b:    0,
			err:  safemath.ErrDivisionByZero,
		},
		{
			name: "zero by zero",
			a:    0,
			b:    0,
			err:  safemath.ErrDivisionByZero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := safemath.Div(tt.a, tt.b)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}
