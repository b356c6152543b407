package router

import (
	"context"
	"errors"
	"testing"

	"cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Solana-ZH/dloom/pkg"
	"github.com/Solana-ZH/dloom/pkg/pool/amm"
)

var (
	mintLow  = solana.PublicKeyFromBytes(append([]byte{1}, make([]byte, 31)...))
	mintHigh = solana.PublicKeyFromBytes(append([]byte{2}, make([]byte, 31)...))
)

type staticProtocol struct {
	pools []pkg.Pool
	err   error
}

func (s staticProtocol) FetchPoolsByPair(context.Context, string, string) ([]pkg.Pool, error) {
	return s.pools, s.err
}

func (s staticProtocol) FetchPoolByID(context.Context, string) (pkg.Pool, error) {
	return nil, errors.New("not supported")
}

func ammPool(t *testing.T, feeRate uint16, reserveA, reserveB uint64) *amm.Pool {
	pool, _, err := amm.NewPool(amm.CreateParams{MintA: mintLow, MintB: mintHigh, FeeRate: feeRate})
	require.NoError(t, err)
	pool.ReservesA, pool.ReservesB = reserveA, reserveB
	return pool
}

func TestGetBestPool(t *testing.T) {
	cheap := ammPool(t, 10, 1_000_000, 2_000_000)
	dear := ammPool(t, 100, 1_000_000, 2_000_000)
	empty := ammPool(t, 10, 0, 0)

	r := NewSimpleRouter(zerolog.Nop(),
		staticProtocol{pools: []pkg.Pool{dear, empty}},
		staticProtocol{err: errors.New("rpc down")},
		staticProtocol{pools: []pkg.Pool{cheap}},
	)
	pools, err := r.QueryAllPools(context.Background(), mintLow.String(), mintHigh.String())
	require.NoError(t, err)
	assert.Len(t, pools, 3)

	best, out, err := r.GetBestPool(context.Background(), mintLow.String(), math.NewInt(10_000))
	require.NoError(t, err)
	assert.Same(t, cheap, best)
	assert.True(t, out.IsPositive())
}

func TestGetBestPoolNoRoute(t *testing.T) {
	r := NewSimpleRouter(zerolog.Nop())
	r.AddPools(ammPool(t, 10, 0, 0))

	_, out, err := r.GetBestPool(context.Background(), mintLow.String(), math.NewInt(1))
	assert.Error(t, err)
	assert.True(t, out.IsZero())
}
