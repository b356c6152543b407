package router

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	"github.com/rs/zerolog"

	"github.com/Solana-ZH/dloom/pkg"
)

// SimpleRouter collects pools from its protocols and picks the one quoting
// the largest output.
type SimpleRouter struct {
	protocols []pkg.Protocol
	pools     []pkg.Pool
	log       zerolog.Logger
}

func NewSimpleRouter(log zerolog.Logger, protocols ...pkg.Protocol) *SimpleRouter {
	return &SimpleRouter{
		protocols: protocols,
		pools:     []pkg.Pool{},
		log:       log,
	}
}

// AddPools registers already loaded pools.
func (r *SimpleRouter) AddPools(pools ...pkg.Pool) {
	r.pools = append(r.pools, pools...)
}

func (r *SimpleRouter) QueryAllPools(ctx context.Context, baseMint, quoteMint string) ([]pkg.Pool, error) {
	for _, proto := range r.protocols {
		pools, err := proto.FetchPoolsByPair(ctx, baseMint, quoteMint)
		if err != nil {
			r.log.Warn().Err(err).Msg("failed to fetch pools")
			continue
		}
		r.pools = append(r.pools, pools...)
	}
	return r.pools, nil
}

func (r *SimpleRouter) GetBestPool(ctx context.Context, tokenIn string, amountIn math.Int) (pkg.Pool, math.Int, error) {
	var best pkg.Pool
	maxOut := math.NewInt(0)
	for _, pool := range r.pools {
		outAmount, err := pool.Quote(ctx, tokenIn, amountIn)
		if err != nil {
			r.log.Debug().Err(err).Str("pool", pool.GetID()).Msg("error quoting")
			continue
		}
		if outAmount.GT(maxOut) {
			maxOut = outAmount
			best = pool
		}
	}
	if best == nil {
		return nil, math.ZeroInt(), fmt.Errorf("no route found")
	}
	return best, maxOut, nil
}
