// Package amm is the constant-product pool: swap pricing, LP mint and burn,
// lazy fee settlement per position and the pool's TWAP oracle.
package amm

import (
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/feegrowth"
	"github.com/Solana-ZH/dloom/pkg/oracle"
	"github.com/Solana-ZH/dloom/pkg/types"
)

// Pool is the persisted state of one constant-product pool.
type Pool struct {
	Bump      uint8
	Authority solana.PublicKey

	TokenAMint  solana.PublicKey
	TokenBMint  solana.PublicKey
	TokenAVault solana.PublicKey
	TokenBVault solana.PublicKey
	LpMint      solana.PublicKey

	FeeRate           uint16
	ProtocolFeeShare  uint16
	ReferrerFeeShare  uint16
	ProtocolFeeVaultA solana.PublicKey
	ProtocolFeeVaultB solana.PublicKey

	ReservesA uint64
	ReservesB uint64

	// FeeGrowth is fees accrued per LP token, scaled by types.Precision.
	FeeGrowth feegrowth.Growth
	Oracle    oracle.Observation

	LastFeeUpdateTimestamp        int64
	PriceACumulativeLastFeeUpdate uint128.Uint128

	// Not persisted
	PoolID   solana.PublicKey `bin:"skip"`
	LpSupply uint64           `bin:"skip"`
}

// Position is one owner's share of a pool.
type Position struct {
	Pool          solana.PublicKey
	Owner         solana.PublicKey
	LpTokenAmount uint64
	Snapshot      feegrowth.Growth
	FeePreference types.FeePreference
}

// OpenPosition returns an empty position whose snapshot starts at the pool's current growth.
func (p *Pool) OpenPosition(owner solana.PublicKey, preference types.FeePreference) (*Position, error) {
	if !preference.Valid() {
		return nil, types.ErrInvalidFeePreference.Wrapf("unknown preference %d", preference)
	}
	return &Position{
		Pool:          p.PoolID,
		Owner:         owner,
		Snapshot:      p.FeeGrowth,
		FeePreference: preference,
	}, nil
}

// reserves returns (source, destination) reserves for a trade direction.
func (p *Pool) reserves(dir types.SwapDirection) (uint64, uint64) {
	if dir == types.SwapAToB {
		return p.ReservesA, p.ReservesB
	}
	return p.ReservesB, p.ReservesA
}

// Direction resolves which side of the pair inputMint sells.
func (p *Pool) Direction(inputMint solana.PublicKey) (types.SwapDirection, error) {
	switch {
	case inputMint.Equals(p.TokenAMint):
		return types.SwapAToB, nil
	case inputMint.Equals(p.TokenBMint):
		return types.SwapBToA, nil
	default:
		return 0, types.ErrInvalidMint.Wrapf("%s is not in pool %s", inputMint, p.PoolID)
	}
}

func (p *Pool) ensurePosition(pos *Position) error {
	if pos == nil || !pos.Pool.Equals(p.PoolID) {
		return types.ErrInvalidPool.Wrap("position belongs to another pool")
	}
	return nil
}
