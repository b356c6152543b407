package dlmm

import (
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/feegrowth"
	"github.com/Solana-ZH/dloom/pkg/fixedpoint"
	"github.com/Solana-ZH/dloom/pkg/types"
)

// Bin holds the liquidity at one price point. Liquidity is denominated in
// token A units; the token B side is liquidity*price/Precision.
type Bin struct {
	Pool      solana.PublicKey
	BinID     int32
	Liquidity uint128.Uint128
	FeeGrowth feegrowth.Growth
}

// AvailableOut is what the bin can pay out to a trade selling in dir.
func (b *Bin) AvailableOut(dir types.SwapDirection, price uint128.Uint128) (uint128.Uint128, error) {
	if dir == types.SwapBToA {
		return b.Liquidity, nil
	}
	return fixedpoint.MulDiv(b.Liquidity, price, types.Precision)
}

// Bins is the arena of materialized bins keyed by id.
type Bins map[int32]*Bin

// Get returns the bin with the given id, or nil.
func (bs Bins) Get(id int32) *Bin {
	return bs[id]
}

// Put stores b under its own id.
func (bs Bins) Put(b *Bin) {
	bs[b.BinID] = b
}
