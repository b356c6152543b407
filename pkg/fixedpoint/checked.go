package fixedpoint

import (
	"github.com/holiman/uint256"
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/types"
)

// widen lifts a 128-bit value into a 256-bit word so intermediate products cannot wrap.
func widen(v uint128.Uint128) *uint256.Int {
	return &uint256.Int{v.Lo, v.Hi, 0, 0}
}

// narrow returns z as a 128-bit value or ErrMathOverflow if it does not fit.
func narrow(z *uint256.Int) (uint128.Uint128, error) {
	if z[2] != 0 || z[3] != 0 {
		return uint128.Zero, types.ErrMathOverflow
	}
	return uint128.New(z[0], z[1]), nil
}

// Add returns a+b.
func Add(a, b uint128.Uint128) (uint128.Uint128, error) {
	sum, overflow := new(uint256.Int).AddOverflow(widen(a), widen(b))
	if overflow {
		return uint128.Zero, types.ErrMathOverflow
	}
	return narrow(sum)
}

// Sub returns a-b, failing when b > a.
func Sub(a, b uint128.Uint128) (uint128.Uint128, error) {
	diff, underflow := new(uint256.Int).SubOverflow(widen(a), widen(b))
	if underflow {
		return uint128.Zero, types.ErrMathOverflow
	}
	return narrow(diff)
}

// SaturatingSub returns a-b, or zero when b > a.
func SaturatingSub(a, b uint128.Uint128) uint128.Uint128 {
	if a.Cmp(b) <= 0 {
		return uint128.Zero
	}
	return a.Sub(b)
}

// Mul returns a*b.
func Mul(a, b uint128.Uint128) (uint128.Uint128, error) {
	prod, overflow := new(uint256.Int).MulOverflow(widen(a), widen(b))
	if overflow {
		return uint128.Zero, types.ErrMathOverflow
	}
	return narrow(prod)
}

// Div returns floor(a/b). Division by zero is reported as ErrMathOverflow.
func Div(a, b uint128.Uint128) (uint128.Uint128, error) {
	if b.IsZero() {
		return uint128.Zero, types.ErrMathOverflow
	}
	return a.Div(b), nil
}

// MulDiv returns floor(a*b/d). The product is held in 256 bits; only the
// quotient has to fit in 128.
func MulDiv(a, b, d uint128.Uint128) (uint128.Uint128, error) {
	return MulDivRounding(a, b, d, RoundingDown)
}

// Rounding selects what MulDivRounding does with a nonzero remainder.
type Rounding int

const (
	RoundingDown Rounding = iota
	RoundingUp
)

// MulDivRounding is MulDiv with an explicit rounding mode.
func MulDivRounding(a, b, d uint128.Uint128, rounding Rounding) (uint128.Uint128, error) {
	if d.IsZero() {
		return uint128.Zero, types.ErrMathOverflow
	}
	prod, overflow := new(uint256.Int).MulOverflow(widen(a), widen(b))
	if overflow {
		return uint128.Zero, types.ErrMathOverflow
	}
	q, rem := new(uint256.Int).DivMod(prod, widen(d), new(uint256.Int))
	if rounding == RoundingUp && !rem.IsZero() {
		q.AddUint64(q, 1)
	}
	return narrow(q)
}

// MulDiv64 is MulDiv over u64 operands, narrowing the result back to u64.
func MulDiv64(a, b, d uint64) (uint64, error) {
	q, err := MulDiv(uint128.From64(a), uint128.From64(b), uint128.From64(d))
	if err != nil {
		return 0, err
	}
	return ToUint64(q)
}

// ToUint64 narrows v to 64 bits.
func ToUint64(v uint128.Uint128) (uint64, error) {
	if v.Hi != 0 {
		return 0, types.ErrMathOverflow
	}
	return v.Lo, nil
}

// Min returns the smaller of a and b.
func Min(a, b uint128.Uint128) uint128.Uint128 {
	if a.Cmp(b) <= 0 {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b uint128.Uint128) uint128.Uint128 {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}
