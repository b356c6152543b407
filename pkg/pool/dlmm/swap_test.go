package dlmm

import (
	"context"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
	"pgregory.net/rapid"

	"github.com/Solana-ZH/dloom/pkg/types"
)

func snapshotBins(pool *Pool) map[int32]Bin {
	out := make(map[int32]Bin, len(pool.Bins))
	for id, b := range pool.Bins {
		out[id] = *b
	}
	return out
}

func TestSwapWithinActiveBin(t *testing.T) {
	pool, _ := fundedPool(t)
	ref := referrer
	c := commit(t, pool, trader, SwapBinIDs(0, types.SwapAToB, 3))

	res, err := pool.Swap(SwapParams{
		Direction:    types.SwapAToB,
		AmountIn:     10_000,
		MinAmountOut: 9_970,
		Trader:       trader,
		Referrer:     &ref,
	}, c)
	require.NoError(t, err)
	assert.Equal(t, uint64(9_970), res.AmountOut)
	assert.Equal(t, uint64(30), res.TotalFee)
	assert.Equal(t, uint64(15), res.LpFee)
	assert.Equal(t, uint64(12), res.ProtocolFee)
	assert.Equal(t, uint64(3), res.ReferralFee)
	assert.Equal(t, int32(0), res.FinalBinID)
	assert.Zero(t, res.BinsCrossed)
	require.NotNil(t, res.Event.FinalBinID)
	assert.Equal(t, int32(0), *res.Event.FinalBinID)
	assert.Equal(t, &ref, res.Event.Referrer)

	assert.Equal(t, uint64(3_009_985), pool.ReservesA)
	assert.Equal(t, uint64(2_989_730), pool.ReservesB)
	assert.Equal(t, int32(0), pool.ActiveBinID)
	assert.Zero(t, pool.VolatilityAccumulator)
	active := pool.Bins.Get(0)
	assert.Equal(t, uint128.From64(1_009_970), active.Liquidity)
	assert.Equal(t, uint128.From64(15_000_000), active.FeeGrowth.A)
	assert.True(t, active.FeeGrowth.B.IsZero())
	assert.True(t, c.Used())
}

func TestSwapAcrossBins(t *testing.T) {
	pool, _ := fundedPool(t)

	res, err := pool.Swap(SwapParams{
		Direction: types.SwapBToA,
		AmountIn:  2_500_000,
		Trader:    trader,
	}, commit(t, pool, trader, SwapBinIDs(0, types.SwapBToA, 3)))
	require.NoError(t, err)
	assert.Equal(t, uint64(2_492_300), res.AmountOut)
	assert.Equal(t, uint64(7_499), res.TotalFee)
	assert.Equal(t, uint64(3_748), res.ProtocolFee)
	assert.Equal(t, uint64(3_751), res.LpFee)
	assert.Zero(t, res.ReferralFee)
	assert.Equal(t, int32(2), res.FinalBinID)
	assert.Equal(t, uint64(2), res.BinsCrossed)

	assert.Equal(t, int32(2), pool.ActiveBinID)
	assert.Equal(t, uint64(2), pool.VolatilityAccumulator)
	assert.Equal(t, uint64(3_000_000-2_492_300), pool.ReservesA)
	assert.Equal(t, uint64(2_999_700+2_500_000-3_748), pool.ReservesB)

	assert.True(t, pool.Bins.Get(0).Liquidity.IsZero())
	assert.True(t, pool.Bins.Get(1).Liquidity.IsZero())
	assert.Equal(t, uint128.From64(507_700), pool.Bins.Get(2).Liquidity)
	assert.Equal(t, uint128.From64(1_505_000_000), pool.Bins.Get(0).FeeGrowth.B)
	assert.Equal(t, uint128.From64(1_505_000_000), pool.Bins.Get(1).FeeGrowth.B)
	assert.Equal(t, uint128.From64(741_000_000), pool.Bins.Get(2).FeeGrowth.B)
	assert.True(t, pool.Bins.Get(2).FeeGrowth.A.IsZero())
}

func TestSwapExhaustingLastBinMovesPastIt(t *testing.T) {
	pool, _ := fundedPool(t)

	// exactly the gross input that drains bin 0
	res, err := pool.Swap(SwapParams{Direction: types.SwapBToA, AmountIn: 1_003_009, Trader: trader},
		commit(t, pool, trader, SwapBinIDs(0, types.SwapBToA, 2)))
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), res.AmountOut)
	assert.Equal(t, int32(1), res.FinalBinID)
	assert.Equal(t, int32(1), pool.ActiveBinID)
}

func TestFillChunkChargesDrainedBinRoundedUp(t *testing.T) {
	price, err := GetPriceAtBin(-1, 1)
	require.NoError(t, err)

	// 1e6 B costs 1_000_100.00001 A at this price
	c, err := fillChunk(types.SwapAToB, 2_000_000, uint128.From64(1_000_000), price, 30, 5000)
	require.NoError(t, err)
	assert.True(t, c.exhausted)
	assert.Equal(t, uint128.From64(1_000_000), c.amountOut)
	assert.Equal(t, uint128.From64(1_000_101), c.consumed)
	assert.Equal(t, uint64(1_003_111), c.amountIn)
	assert.Equal(t, uint64(3_009), c.totalFee)
	assert.Equal(t, c.totalFee, c.protocolFee+c.lpFee)
}

func TestSwapCrossesUncreatedBins(t *testing.T) {
	pool := newTestPool(t, 20, 30)
	pos, _, err := pool.OpenPosition(owner, nftMint, 0, 20)
	require.NoError(t, err)
	_, err = pool.AddLiquidity(pos, uint128.From64(2_000_000), commit(t, pool, owner, BinIDs(0, 20, 20)))
	require.NoError(t, err)
	require.Len(t, pool.Bins, 2)
	assert.Equal(t, uint64(2_000_000), pool.ReservesA)
	assert.Equal(t, uint64(1_000_000), pool.ReservesB)

	q, err := pool.QuoteSwap(types.SwapBToA, 1_500_000)
	require.NoError(t, err)

	res, err := pool.Swap(SwapParams{Direction: types.SwapBToA, AmountIn: 1_500_000, Trader: trader},
		commit(t, pool, trader, SwapBinIDs(0, types.SwapBToA, 21)))
	require.NoError(t, err)
	assert.Equal(t, q.AmountOut, res.AmountOut)
	assert.Equal(t, uint64(1_476_232), res.AmountOut)
	assert.Equal(t, uint64(4_499), res.TotalFee)
	assert.Equal(t, uint64(2_249), res.ProtocolFee)
	assert.Equal(t, int32(20), res.FinalBinID)
	assert.Equal(t, uint64(20), res.BinsCrossed)

	assert.Equal(t, int32(20), pool.ActiveBinID)
	assert.Equal(t, uint64(20), pool.VolatilityAccumulator)
	assert.Equal(t, uint64(523_768), pool.ReservesA)
	assert.Equal(t, uint64(2_497_751), pool.ReservesB)

	// empty bins walked on the way are not stored
	assert.Len(t, pool.Bins, 2)
	assert.Nil(t, pool.Bins.Get(1))
	assert.True(t, pool.Bins.Get(0).Liquidity.IsZero())
	assert.Equal(t, uint128.From64(523_768), pool.Bins.Get(20).Liquidity)
	assert.Equal(t, uint128.From64(1_505_000_000), pool.Bins.Get(0).FeeGrowth.B)
	assert.Equal(t, uint128.From64(745_000_000), pool.Bins.Get(20).FeeGrowth.B)

	// skipping the empty ids leaves the walk outside the declared set
	_, err = pool.Swap(SwapParams{Direction: types.SwapAToB, AmountIn: 1_200_000, Trader: trader},
		commit(t, pool, trader, []int32{20, 0}))
	assert.ErrorIs(t, err, types.ErrBinCacheMismatch)
}

func TestSwapFailuresLeavePoolUntouched(t *testing.T) {
	pool, _ := fundedPool(t)
	before := *pool
	bins := snapshotBins(pool)
	self := trader

	tests := []struct {
		name   string
		params SwapParams
		ids    []int32
		want   error
	}{
		{
			name:   "declared bins run out",
			params: SwapParams{Direction: types.SwapBToA, AmountIn: 5_000_000, Trader: trader},
			ids:    SwapBinIDs(0, types.SwapBToA, 3),
			want:   types.ErrInsufficientLiquidityForSwap,
		},
		{
			name:   "walk leaves the declared set",
			params: SwapParams{Direction: types.SwapBToA, AmountIn: 2_500_000, Trader: trader},
			ids:    []int32{0, 2},
			want:   types.ErrBinCacheMismatch,
		},
		{
			name:   "active bin not declared",
			params: SwapParams{Direction: types.SwapBToA, AmountIn: 10, Trader: trader},
			ids:    []int32{1, 2},
			want:   types.ErrBinCacheMismatch,
		},
		{
			name:   "slippage",
			params: SwapParams{Direction: types.SwapAToB, AmountIn: 10_000, MinAmountOut: 9_971, Trader: trader},
			ids:    SwapBinIDs(0, types.SwapAToB, 3),
			want:   types.ErrSlippageExceeded,
		},
		{
			name:   "self referral",
			params: SwapParams{Direction: types.SwapAToB, AmountIn: 10_000, Trader: trader, Referrer: &self},
			ids:    SwapBinIDs(0, types.SwapAToB, 3),
			want:   types.ErrReferrerIsTrader,
		},
		{
			name:   "zero input",
			params: SwapParams{Direction: types.SwapAToB, Trader: trader},
			ids:    SwapBinIDs(0, types.SwapAToB, 3),
			want:   types.ErrZeroAmount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := commit(t, pool, trader, tt.ids)
			_, err := pool.Swap(tt.params, c)
			assert.ErrorIs(t, err, tt.want)
			assert.False(t, c.Used())
			assert.Equal(t, before.ReservesA, pool.ReservesA)
			assert.Equal(t, before.ReservesB, pool.ReservesB)
			assert.Equal(t, before.ActiveBinID, pool.ActiveBinID)
			assert.Equal(t, bins, snapshotBins(pool))
		})
	}
}

func TestSwapRejectsOtherTradersCommitment(t *testing.T) {
	pool, _ := fundedPool(t)
	_, err := pool.Swap(SwapParams{Direction: types.SwapAToB, AmountIn: 10, Trader: trader},
		commit(t, pool, owner, SwapBinIDs(0, types.SwapAToB, 3)))
	assert.ErrorIs(t, err, types.ErrUnauthorized)
}

func TestQuoteSwapMatchesSwap(t *testing.T) {
	pool, _ := fundedPool(t)
	bins := snapshotBins(pool)

	q, err := pool.QuoteSwap(types.SwapBToA, 2_500_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_492_300), q.AmountOut)
	assert.Equal(t, int32(2), q.FinalBinID)
	assert.Equal(t, bins, snapshotBins(pool))
	assert.Equal(t, int32(0), pool.ActiveBinID)

	out, err := pool.Quote(context.Background(), mintHigh.String(), math.NewInt(2_500_000))
	require.NoError(t, err)
	assert.True(t, out.Equal(math.NewInt(2_492_300)), out.String())

	_, err = pool.QuoteSwap(types.SwapBToA, 5_000_000)
	assert.ErrorIs(t, err, types.ErrInsufficientLiquidityForSwap)

	_, err = pool.Quote(context.Background(), trader.String(), math.NewInt(1))
	assert.ErrorIs(t, err, types.ErrInvalidMint)
}

func TestSwapConservesReserves(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		pool, _ := fundedPool(t)
		amountIn := rapid.Uint64Range(1, 3_500_000).Draw(t, "amountIn")

		res, err := pool.Swap(SwapParams{Direction: types.SwapBToA, AmountIn: amountIn, Trader: trader},
			commit(t, pool, trader, SwapBinIDs(0, types.SwapBToA, 3)))
		if err != nil {
			assert.ErrorIs(t, err, types.ErrInsufficientLiquidityForSwap)
			assert.Equal(t, uint64(3_000_000), pool.ReservesA)
			return
		}
		assert.LessOrEqual(t, res.AmountOut, amountIn)
		assert.Equal(t, uint64(3_000_000), pool.ReservesA+res.AmountOut)
		assert.Equal(t, uint64(2_999_700)+amountIn-res.ProtocolFee, pool.ReservesB)
		assert.Equal(t, res.TotalFee, res.LpFee+res.ProtocolFee)
		assert.GreaterOrEqual(t, pool.ActiveBinID, int32(0))
		assert.LessOrEqual(t, pool.ActiveBinID, int32(3))
		assert.Equal(t, uint64(pool.ActiveBinID), pool.VolatilityAccumulator)
	})
}
