package amm

import (
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/events"
	"github.com/Solana-ZH/dloom/pkg/fixedpoint"
	"github.com/Solana-ZH/dloom/pkg/types"
)

// SwapParams is a validated trade request.
type SwapParams struct {
	Direction    types.SwapDirection
	AmountIn     uint64
	MinAmountOut uint64
	// LpSupply is the current supply of the pool's LP mint.
	LpSupply uint64
	Trader   solana.PublicKey
	Referrer *solana.PublicKey
	Now      int64
}

// SwapResult is the settlement of a trade. ProtocolFee is what goes to the
// protocol fee vault after the referral part has been carved out of it.
type SwapResult struct {
	AmountOut   uint64
	TotalFee    uint64
	LpFee       uint64
	ProtocolFee uint64
	ReferralFee uint64
	Event       events.SwapExecuted
}

// Swap trades against the pool. The oracle observes the pre-trade reserves.
// Nothing is written to p unless the whole trade succeeds.
func (p *Pool) Swap(params SwapParams) (SwapResult, error) {
	if params.Referrer != nil && params.Referrer.Equals(params.Trader) {
		return SwapResult{}, types.ErrReferrerIsTrader
	}

	next := *p
	var err error
	if next.Oracle, err = p.Oracle.Update(p.ReservesA, p.ReservesB, params.Now); err != nil {
		return SwapResult{}, err
	}

	source, destination := p.reserves(params.Direction)
	q, err := ComputeSwap(params.AmountIn, source, destination, p.FeeRate, p.ProtocolFeeShare)
	if err != nil {
		return SwapResult{}, err
	}
	if q.AmountOut < params.MinAmountOut {
		return SwapResult{}, types.ErrSlippageExceeded.Wrapf("out %d below minimum %d", q.AmountOut, params.MinAmountOut)
	}

	referral, err := fixedpoint.ReferralFee(q.ProtocolFee, p.ReferrerFeeShare, params.Referrer != nil)
	if err != nil {
		return SwapResult{}, err
	}

	// the whole protocol fee, referral included, leaves the LP reserves
	newSource, err := fixedpoint.ToUint64(uint128.From64(source).Add64(q.AmountIn - q.ProtocolFee))
	if err != nil {
		return SwapResult{}, err
	}
	newDestination := destination - q.AmountOut
	if params.Direction == types.SwapAToB {
		next.ReservesA, next.ReservesB = newSource, newDestination
	} else {
		next.ReservesB, next.ReservesA = newSource, newDestination
	}

	if next.FeeGrowth, err = p.FeeGrowth.Accrue(params.Direction, q.LpFee, uint128.From64(params.LpSupply)); err != nil {
		return SwapResult{}, err
	}

	*p = next
	return SwapResult{
		AmountOut:   q.AmountOut,
		TotalFee:    q.TotalFee,
		LpFee:       q.LpFee,
		ProtocolFee: q.ProtocolFee - referral,
		ReferralFee: referral,
		Event: events.SwapExecuted{
			Pool:        p.PoolID,
			Trader:      params.Trader,
			Direction:   params.Direction,
			AmountIn:    q.AmountIn,
			AmountOut:   q.AmountOut,
			ProtocolFee: q.ProtocolFee - referral,
			LpFee:       q.LpFee,
			ReferralFee: referral,
			Referrer:    params.Referrer,
		},
	}, nil
}
