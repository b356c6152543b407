// Package dlmm is the discretized liquidity pool. Liquidity sits in bins at
// fixed geometric prices; swaps walk consecutive bins from the active one and
// every multi-bin operation runs against a declared Commitment.
package dlmm

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Solana-ZH/dloom/pkg/types"
)

// Pool is the persisted state of one DLMM pool.
type Pool struct {
	Bump      uint8
	Authority solana.PublicKey
	PoolType  types.PoolType

	TokenAMint  solana.PublicKey
	TokenBMint  solana.PublicKey
	TokenAVault solana.PublicKey
	TokenBVault solana.PublicKey

	ActiveBinID int32
	BinStep     uint16

	FeeRate           uint16
	ProtocolFeeShare  uint16
	ReferrerFeeShare  uint16
	ProtocolFeeVaultA solana.PublicKey
	ProtocolFeeVaultB solana.PublicKey

	// VolatilityAccumulator counts bins crossed by swaps since the last fee update.
	VolatilityAccumulator  uint64
	LastFeeUpdateTimestamp int64

	ReservesA uint64
	ReservesB uint64

	// Not persisted
	PoolID solana.PublicKey `bin:"skip"`
	Bins   Bins             `bin:"skip"`
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

func (p *Pool) arena() Bins {
	if p.Bins == nil {
		p.Bins = Bins{}
	}
	return p.Bins
}
