package fixedpoint

import (
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/types"
)

var basisPointMax = uint128.From64(types.BasisPointMax)

// PowBps raises base/10000 to exp, scaled by types.Precision.
// base is a basis-point value where 10000 means 1.0. Each multiply and each
// squaring is followed by a divide by 10000, so results are reproducible bit
// for bit across implementations.
func PowBps(base uint128.Uint128, exp uint32) (uint128.Uint128, error) {
	res := types.Precision
	if exp == 0 {
		return res, nil
	}
	current := base
	var err error
	for exp > 0 {
		if exp&1 == 1 {
			if res, err = MulDiv(res, current, basisPointMax); err != nil {
				return uint128.Zero, err
			}
		}
		if current, err = MulDiv(current, current, basisPointMax); err != nil {
			return uint128.Zero, err
		}
		exp >>= 1
	}
	return res, nil
}
