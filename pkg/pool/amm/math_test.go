package amm

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Solana-ZH/dloom/pkg/types"
)

func TestComputeSwapScenario(t *testing.T) {
	q, err := ComputeSwap(10_000, 1_000_000, 2_000_000, 30, 5000)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), q.TotalFee)
	assert.Equal(t, uint64(15), q.ProtocolFee)
	assert.Equal(t, uint64(15), q.LpFee)
	assert.Equal(t, uint64(9_970), q.AmountInNet)
	assert.Equal(t, uint64(19_742), q.AmountOut)
}

func TestComputeSwapErrors(t *testing.T) {
	_, err := ComputeSwap(0, 1, 1, 30, 0)
	assert.ErrorIs(t, err, types.ErrZeroAmount)

	_, err = ComputeSwap(10, 0, 1, 30, 0)
	assert.ErrorIs(t, err, types.ErrInsufficientLiquidityForSwap)

	_, err = ComputeSwap(10, 1, 0, 30, 0)
	assert.ErrorIs(t, err, types.ErrInsufficientLiquidityForSwap)
}

func TestComputeSwapLargeReserves(t *testing.T) {
	// destination * net overflows u64 but not the widened product
	max := ^uint64(0)
	q, err := ComputeSwap(max/2, max/2, max, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, max/2, q.AmountOut)
}

func TestComputeDeposit(t *testing.T) {
	d, err := ComputeDeposit(0, 0, 0, 10_000, 40_000)
	require.NoError(t, err)
	assert.Equal(t, Deposit{AmountA: 10_000, AmountB: 40_000, LpMinted: 20_000}, d)

	d, err = ComputeDeposit(10_000, 40_000, 20_000, 1_000, 5_000)
	require.NoError(t, err)
	assert.Equal(t, Deposit{AmountA: 1_000, AmountB: 4_000, LpMinted: 2_000}, d)

	d, err = ComputeDeposit(10_000, 40_000, 20_000, 1_000, 3_000)
	require.NoError(t, err)
	assert.Equal(t, Deposit{AmountA: 750, AmountB: 3_000, LpMinted: 1_500}, d)
}

func TestComputeWithdrawal(t *testing.T) {
	a, b, err := ComputeWithdrawal(10_000, 40_000, 20_000, 5_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_500), a)
	assert.Equal(t, uint64(10_000), b)

	_, _, err = ComputeWithdrawal(10_000, 40_000, 0, 1)
	assert.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestSwapOutputMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		src := rapid.Uint64Range(1, 1e15).Draw(t, "src")
		dst := rapid.Uint64Range(1, 1e15).Draw(t, "dst")
		in := rapid.Uint64Range(1, 1e12).Draw(t, "in")
		more := rapid.Uint64Range(0, 1e12).Draw(t, "more")
		fee := rapid.Uint16Range(0, 9999).Draw(t, "fee")

		base, err := ComputeSwap(in, src, dst, fee, 0)
		if err != nil {
			t.Fatalf("swap: %v", err)
		}
		bigger, err := ComputeSwap(in+more, src, dst, fee, 0)
		if err != nil {
			t.Fatalf("swap: %v", err)
		}
		if bigger.AmountOut < base.AmountOut {
			t.Fatalf("out decreased with more input: %d < %d", bigger.AmountOut, base.AmountOut)
		}
		pricier, err := ComputeSwap(in, src, dst, fee+1, 0)
		if err != nil {
			t.Fatalf("swap: %v", err)
		}
		if pricier.AmountOut > base.AmountOut {
			t.Fatalf("out increased with higher fee: %d > %d", pricier.AmountOut, base.AmountOut)
		}
	})
}

func TestSwapWithoutFeeIsExactFormula(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		src := rapid.Uint64Range(1, 1e18).Draw(t, "src")
		dst := rapid.Uint64Range(1, 1e18).Draw(t, "dst")
		in := rapid.Uint64Range(1, 1e18).Draw(t, "in")

		q, err := ComputeSwap(in, src, dst, 0, 0)
		if err != nil {
			t.Fatalf("swap: %v", err)
		}
		want := new(big.Int).Mul(new(big.Int).SetUint64(dst), new(big.Int).SetUint64(in))
		want.Quo(want, new(big.Int).Add(new(big.Int).SetUint64(src), new(big.Int).SetUint64(in)))
		if q.AmountOut != want.Uint64() {
			t.Fatalf("out %d, want %s", q.AmountOut, want)
		}
	})
}
