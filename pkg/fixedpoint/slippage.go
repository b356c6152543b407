package fixedpoint

import (
	"cosmossdk.io/math"

	"github.com/Solana-ZH/dloom/pkg/types"
)

// MinAmountOut applies a slippage tolerance in basis points to a quoted amount.
func MinAmountOut(quoted math.Int, slippageBps uint16) math.Int {
	if slippageBps >= types.BasisPointMax {
		return math.ZeroInt()
	}
	return quoted.Mul(math.NewInt(int64(types.BasisPointMax - slippageBps))).Quo(math.NewInt(types.BasisPointMax))
}

// MinAmountOut64 is MinAmountOut for a raw u64 quote.
func MinAmountOut64(quoted uint64, slippageBps uint16) uint64 {
	return MinAmountOut(math.NewIntFromUint64(quoted), slippageBps).Uint64()
}
