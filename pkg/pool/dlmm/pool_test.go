package dlmm

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/types"
)

var (
	mintLow  = solana.PublicKeyFromBytes(append([]byte{1}, make([]byte, 31)...))
	mintHigh = solana.PublicKeyFromBytes(append([]byte{2}, make([]byte, 31)...))
	owner    = solana.PublicKeyFromBytes(append([]byte{5}, make([]byte, 31)...))
	trader   = solana.PublicKeyFromBytes(append([]byte{9}, make([]byte, 31)...))
	referrer = solana.PublicKeyFromBytes(append([]byte{7}, make([]byte, 31)...))
	nftMint  = solana.PublicKeyFromBytes(append([]byte{11}, make([]byte, 31)...))
	nftMint2 = solana.PublicKeyFromBytes(append([]byte{12}, make([]byte, 31)...))
)

const testNow = 1_700_000_000

func newTestPool(t require.TestingT, binStep, feeRate uint16) *Pool {
	pool, _, err := NewPool(CreateParams{
		PoolType:         types.PoolTypeOfficial,
		MintA:            mintLow,
		MintB:            mintHigh,
		BinStep:          binStep,
		FeeRate:          feeRate,
		ProtocolFeeShare: 5000,
		ReferrerFeeShare: 2000,
		Now:              testNow,
	}, &Parameters{Official: []Parameter{{BinStep: binStep, FeeRate: feeRate}}})
	require.NoError(t, err)
	return pool
}

func commit(t require.TestingT, pool *Pool, who solana.PublicKey, ids []int32) *Commitment {
	c, err := NewCommitment(who, pool.PoolID, ids)
	require.NoError(t, err)
	return c
}

// fundedPool holds 5_000_000 units of owner liquidity over bins [-2, 2] with
// bin step 1, 1_000_000 per bin, and the active bin at 0.
func fundedPool(t require.TestingT) (*Pool, *Position) {
	pool := newTestPool(t, 1, 30)
	pos, _, err := pool.OpenPosition(owner, nftMint, -2, 2)
	require.NoError(t, err)
	_, err = pool.AddLiquidity(pos, uint128.From64(5_000_000), commit(t, pool, owner, BinIDs(-2, 2, 1)))
	require.NoError(t, err)
	return pool, pos
}

func TestNewPool(t *testing.T) {
	allowed := &Parameters{
		Official:  []Parameter{{BinStep: 20, FeeRate: 30}},
		Community: []Parameter{{BinStep: 50, FeeRate: 100}},
	}
	params := CreateParams{PoolType: types.PoolTypeOfficial, MintA: mintLow, MintB: mintHigh, BinStep: 20, FeeRate: 30, InitialBinID: -7, Now: testNow}

	pool, ev, err := NewPool(params, allowed)
	require.NoError(t, err)
	assert.Equal(t, int32(-7), pool.ActiveBinID)
	assert.Equal(t, int64(testNow), pool.LastFeeUpdateTimestamp)
	assert.Zero(t, pool.VolatilityAccumulator)
	assert.Equal(t, pool.PoolID, ev.Pool)
	assert.Equal(t, "dlmm", ev.Design)

	community := params
	community.PoolType = types.PoolTypeCommunity
	_, _, err = NewPool(community, allowed)
	assert.ErrorIs(t, err, types.ErrInvalidParameters)

	community.BinStep, community.FeeRate = 50, 100
	_, _, err = NewPool(community, allowed)
	assert.NoError(t, err)

	zeroStep := params
	zeroStep.BinStep = 0
	_, _, err = NewPool(zeroStep, allowed)
	assert.ErrorIs(t, err, types.ErrInvalidBinStep)

	swapped := params
	swapped.MintA, swapped.MintB = mintHigh, mintLow
	_, _, err = NewPool(swapped, allowed)
	assert.ErrorIs(t, err, types.ErrInvalidMintOrder)

	shares := params
	shares.ProtocolFeeShare, shares.ReferrerFeeShare = 9000, 2000
	_, _, err = NewPool(shares, allowed)
	assert.ErrorIs(t, err, types.ErrFeeShareExceedsTotal)

	_, _, err = NewPool(params, nil)
	assert.ErrorIs(t, err, types.ErrInvalidParameters)
}

func TestDirection(t *testing.T) {
	pool := newTestPool(t, 1, 30)

	dir, err := pool.Direction(mintLow)
	require.NoError(t, err)
	assert.Equal(t, types.SwapAToB, dir)

	dir, err = pool.Direction(mintHigh)
	require.NoError(t, err)
	assert.Equal(t, types.SwapBToA, dir)

	_, err = pool.Direction(trader)
	assert.ErrorIs(t, err, types.ErrInvalidMint)
}

func TestOpenPosition(t *testing.T) {
	pool := newTestPool(t, 20, 30)

	pos, ev, err := pool.OpenPosition(owner, nftMint, -40, 60)
	require.NoError(t, err)
	assert.Equal(t, pool.PoolID, pos.Pool)
	assert.True(t, pos.Liquidity.IsZero())
	assert.Equal(t, pos.Address, ev.Position)
	assert.Equal(t, []int32{-40, -20, 0, 20, 40, 60}, pos.BinIDs(pool.BinStep))

	tests := []struct {
		name         string
		lower, upper int32
		want         error
	}{
		{"inverted", 20, -20, types.ErrInvalidBinRange},
		{"empty", 20, 20, types.ErrInvalidBinRange},
		{"unaligned lower", -30, 20, types.ErrInvalidBinID},
		{"unaligned upper", 0, 21, types.ErrInvalidBinID},
		{"too wide", 0, 70 * 20, types.ErrRangeTooWide},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := pool.OpenPosition(owner, nftMint, tt.lower, tt.upper)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, _, err = pool.OpenPosition(owner, nftMint, 0, 69*20)
	assert.NoError(t, err)
}

func TestBurnPosition(t *testing.T) {
	pool, pos := fundedPool(t)

	_, err := pool.BurnPosition(pos)
	assert.ErrorIs(t, err, types.ErrPositionNotEmpty)

	_, err = pool.RemoveLiquidity(pos, pos.Liquidity, 0, 0, commit(t, pool, owner, pos.BinIDs(1)))
	require.NoError(t, err)

	ev, err := pool.BurnPosition(pos)
	require.NoError(t, err)
	assert.Equal(t, pos.Address, ev.Position)
}
