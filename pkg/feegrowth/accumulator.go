// Package feegrowth implements lazy fee settlement: a monotonic per-unit
// growth counter per asset and snapshot differencing per position.
package feegrowth

import (
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/fixedpoint"
	"github.com/Solana-ZH/dloom/pkg/types"
)

// Growth is a pair of per-unit fee accumulators, one per pool asset, scaled by types.Precision.
type Growth struct {
	A uint128.Uint128
	B uint128.Uint128
}

// PerUnit returns fee*Precision/units, or zero when either is zero.
func PerUnit(fee uint64, units uint128.Uint128) (uint128.Uint128, error) {
	if fee == 0 || units.IsZero() {
		return uint128.Zero, nil
	}
	return fixedpoint.MulDiv(uint128.From64(fee), types.Precision, units)
}

// Accrue bumps the accumulator of the given asset by fee spread over units.
// Zero supply leaves the accumulator untouched.
func (g Growth) Accrue(dir types.SwapDirection, fee uint64, units uint128.Uint128) (Growth, error) {
	delta, err := PerUnit(fee, units)
	if err != nil || delta.IsZero() {
		return g, err
	}
	// fees are charged in the input asset
	if dir == types.SwapAToB {
		g.A, err = fixedpoint.Add(g.A, delta)
	} else {
		g.B, err = fixedpoint.Add(g.B, delta)
	}
	return g, err
}

// Pending returns floor((current-snapshot)*units/Precision). A snapshot ahead
// of current counts as zero growth.
func Pending(current, snapshot, units uint128.Uint128) (uint64, error) {
	diff := fixedpoint.SaturatingSub(current, snapshot)
	if diff.IsZero() || units.IsZero() {
		return 0, nil
	}
	owed, err := fixedpoint.MulDiv(diff, units, types.Precision)
	if err != nil {
		return 0, err
	}
	return fixedpoint.ToUint64(owed)
}

// Pending returns the fees owed on both assets to units held since snapshot.
func (g Growth) Pending(snapshot Growth, units uint128.Uint128) (uint64, uint64, error) {
	a, err := Pending(g.A, snapshot.A, units)
	if err != nil {
		return 0, 0, err
	}
	b, err := Pending(g.B, snapshot.B, units)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// Max returns the component-wise maximum of g and others. Positions spanning
// several bins keep one snapshot, the highest growth seen across them.
func Max(g Growth, others ...Growth) Growth {
	for _, o := range others {
		g.A = fixedpoint.Max(g.A, o.A)
		g.B = fixedpoint.Max(g.B, o.B)
	}
	return g
}
