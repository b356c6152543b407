package amm

import (
	"context"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Solana-ZH/dloom/pkg"
	"github.com/Solana-ZH/dloom/pkg/types"
)

func TestQuoteDoesNotMutate(t *testing.T) {
	pool := newTestPool(t, 30, 5000, 0)
	pool.ReservesA, pool.ReservesB = 1_000_000, 2_000_000

	var quoter pkg.Pool = pool
	out, err := quoter.Quote(context.Background(), mintLow.String(), math.NewInt(10_000))
	require.NoError(t, err)
	assert.True(t, out.Equal(math.NewInt(19_742)), out.String())
	assert.Equal(t, uint64(1_000_000), pool.ReservesA)

	base, quote := pool.GetTokens()
	assert.Equal(t, mintLow.String(), base)
	assert.Equal(t, mintHigh.String(), quote)
	assert.Equal(t, pkg.ProtocolNameDloomAmm, pool.ProtocolName())

	_, err = pool.Quote(context.Background(), "not-a-key", math.NewInt(1))
	assert.Error(t, err)

	_, err = pool.Quote(context.Background(), trader.String(), math.NewInt(1))
	assert.ErrorIs(t, err, types.ErrInvalidMint)
}
