package dlmm

import (
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/events"
	"github.com/Solana-ZH/dloom/pkg/fixedpoint"
	"github.com/Solana-ZH/dloom/pkg/types"
)

var bps = uint128.From64(types.BasisPointMax)

// SwapParams is a validated trade request.
type SwapParams struct {
	Direction    types.SwapDirection
	AmountIn     uint64
	MinAmountOut uint64
	Trader       solana.PublicKey
	Referrer     *solana.PublicKey
}

// SwapResult is the settlement of a trade. ProtocolFee excludes the referral part.
type SwapResult struct {
	AmountOut   uint64
	TotalFee    uint64
	LpFee       uint64
	ProtocolFee uint64
	ReferralFee uint64
	FinalBinID  int32
	BinsCrossed uint64
	Event       events.SwapExecuted
}

// chunk is the part of a trade filled inside one bin.
type chunk struct {
	amountIn    uint64
	totalFee    uint64
	protocolFee uint64
	lpFee       uint64
	amountOut   uint128.Uint128
	consumed    uint128.Uint128
	exhausted   bool
}

// fillChunk fills as much of remaining as the bin allows at price. When the
// bin runs dry first, the chunk is charged only for the input it consumes,
// rounded up so the remainder stays with the pool.
func fillChunk(dir types.SwapDirection, remaining uint64, available, price uint128.Uint128, feeRate, protocolFeeShare uint16) (chunk, error) {
	total, protocol, lp, err := fixedpoint.FeeSplit(remaining, feeRate, protocolFeeShare)
	if err != nil {
		return chunk{}, err
	}
	out, err := convert(dir, uint128.From64(remaining-total), price)
	if err != nil {
		return chunk{}, err
	}
	if out.Cmp(available) <= 0 {
		consumed, err := convertBack(dir, out, price, fixedpoint.RoundingDown)
		if err != nil {
			return chunk{}, err
		}
		return chunk{
			amountIn:    remaining,
			totalFee:    total,
			protocolFee: protocol,
			lpFee:       lp,
			amountOut:   out,
			consumed:    consumed,
			exhausted:   out.Equals(available),
		}, nil
	}

	consumed, err := convertBack(dir, available, price, fixedpoint.RoundingUp)
	if err != nil {
		return chunk{}, err
	}
	gross, err := fixedpoint.MulDivRounding(consumed, bps, uint128.From64(types.BasisPointMax-uint64(feeRate)), fixedpoint.RoundingUp)
	if err != nil {
		return chunk{}, err
	}
	amountIn := remaining
	if gross.Cmp(uint128.From64(remaining)) < 0 {
		amountIn = gross.Lo
	}
	if amountIn == 0 {
		return chunk{}, nil
	}
	if total, protocol, lp, err = fixedpoint.FeeSplit(amountIn, feeRate, protocolFeeShare); err != nil {
		return chunk{}, err
	}
	return chunk{
		amountIn:    amountIn,
		totalFee:    total,
		protocolFee: protocol,
		lpFee:       lp,
		amountOut:   available,
		consumed:    consumed,
		exhausted:   true,
	}, nil
}

// convert prices an input amount into the output asset.
func convert(dir types.SwapDirection, amount, price uint128.Uint128) (uint128.Uint128, error) {
	if dir == types.SwapAToB {
		return fixedpoint.MulDiv(amount, price, types.Precision)
	}
	return fixedpoint.MulDiv(amount, types.Precision, price)
}

// convertBack prices an output amount back into the input asset.
func convertBack(dir types.SwapDirection, amount, price uint128.Uint128, rounding fixedpoint.Rounding) (uint128.Uint128, error) {
	if dir == types.SwapAToB {
		return fixedpoint.MulDivRounding(amount, types.Precision, price, rounding)
	}
	return fixedpoint.MulDivRounding(amount, price, types.Precision, rounding)
}

func step(id int32, dir types.SwapDirection) int32 {
	if dir == types.SwapAToB {
		return id - 1
	}
	return id + 1
}

// route is the outcome of walking the committed bins.
type route struct {
	amountOut   uint128.Uint128
	totalFee    uint64
	protocolFee uint64
	lpFee       uint64
	finalBinID  int32
}

// walk fills amountIn bin by bin from the active bin, visiting at most as
// many bins as were declared. Bins are modified in set only.
func (p *Pool) walk(set *binSet, dir types.SwapDirection, amountIn uint64) (route, error) {
	remaining := amountIn
	id := p.ActiveBinID
	r := route{finalBinID: id}
	for i := 0; i < len(set.c.BinIDs) && remaining > 0; i++ {
		b, err := set.get(id)
		if err != nil {
			return route{}, err
		}
		r.finalBinID = id
		price, err := GetPriceAtBin(id, p.BinStep)
		if err != nil {
			return route{}, err
		}
		available, err := b.AvailableOut(dir, price)
		if err != nil {
			return route{}, err
		}
		if available.IsZero() {
			id = step(id, dir)
			continue
		}
		c, err := fillChunk(dir, remaining, available, price, p.FeeRate, p.ProtocolFeeShare)
		if err != nil {
			return route{}, err
		}
		if c.amountIn == 0 {
			id = step(id, dir)
			continue
		}

		// growth is spread over the liquidity present before the fill
		if b.FeeGrowth, err = b.FeeGrowth.Accrue(dir, c.lpFee, b.Liquidity); err != nil {
			return route{}, err
		}
		if dir == types.SwapAToB {
			if b.Liquidity, err = fixedpoint.Add(b.Liquidity, c.consumed); err != nil {
				return route{}, err
			}
		} else {
			b.Liquidity = b.Liquidity.Sub(c.amountOut)
		}

		if r.amountOut, err = fixedpoint.Add(r.amountOut, c.amountOut); err != nil {
			return route{}, err
		}
		r.totalFee += c.totalFee
		r.protocolFee += c.protocolFee
		r.lpFee += c.lpFee
		remaining -= c.amountIn

		id = step(id, dir)
		if c.exhausted {
			r.finalBinID = id
		}
	}
	if remaining > 0 {
		return route{}, types.ErrInsufficientLiquidityForSwap.Wrapf("%d of %d unfilled after %d bins", remaining, amountIn, len(set.c.BinIDs))
	}
	return r, nil
}

// Swap trades across the committed bins. The active bin moves to where the
// input ran out and the volatility accumulator grows by the bins crossed.
// Committed ids that were never created are walked as empty bins.
func (p *Pool) Swap(params SwapParams, c *Commitment) (SwapResult, error) {
	if params.Referrer != nil && params.Referrer.Equals(params.Trader) {
		return SwapResult{}, types.ErrReferrerIsTrader
	}
	if params.AmountIn == 0 {
		return SwapResult{}, types.ErrZeroAmount
	}
	arena := p.arena()
	set, err := openBins(c, params.Trader, p.PoolID, arena, true)
	if err != nil {
		return SwapResult{}, err
	}
	r, err := p.walk(set, params.Direction, params.AmountIn)
	if err != nil {
		return SwapResult{}, err
	}
	out, err := fixedpoint.ToUint64(r.amountOut)
	if err != nil {
		return SwapResult{}, err
	}
	if out < params.MinAmountOut {
		return SwapResult{}, types.ErrSlippageExceeded.Wrapf("out %d below minimum %d", out, params.MinAmountOut)
	}
	referral, err := fixedpoint.ReferralFee(r.protocolFee, p.ReferrerFeeShare, params.Referrer != nil)
	if err != nil {
		return SwapResult{}, err
	}

	next := *p
	source, destination := &next.ReservesA, &next.ReservesB
	if params.Direction == types.SwapBToA {
		source, destination = &next.ReservesB, &next.ReservesA
	}
	if *destination < out {
		return SwapResult{}, types.ErrInsufficientLiquidityForSwap.Wrapf("out %d exceeds reserve %d", out, *destination)
	}
	if *source, err = add64(*source, params.AmountIn-r.protocolFee); err != nil {
		return SwapResult{}, err
	}
	*destination -= out

	crossed := uint64(absDiff(r.finalBinID, p.ActiveBinID))
	if next.VolatilityAccumulator, err = add64(next.VolatilityAccumulator, crossed); err != nil {
		return SwapResult{}, err
	}
	next.ActiveBinID = r.finalBinID

	if err := set.commit(arena); err != nil {
		return SwapResult{}, err
	}
	*p = next
	final := r.finalBinID
	return SwapResult{
		AmountOut:   out,
		TotalFee:    r.totalFee,
		LpFee:       r.lpFee,
		ProtocolFee: r.protocolFee - referral,
		ReferralFee: referral,
		FinalBinID:  final,
		BinsCrossed: crossed,
		Event: events.SwapExecuted{
			Pool:        p.PoolID,
			Trader:      params.Trader,
			Direction:   params.Direction,
			AmountIn:    params.AmountIn,
			AmountOut:   out,
			ProtocolFee: r.protocolFee - referral,
			LpFee:       r.lpFee,
			ReferralFee: referral,
			Referrer:    params.Referrer,
			FinalBinID:  &final,
		},
	}, nil
}

func absDiff(a, b int32) int64 {
	d := int64(a) - int64(b)
	if d < 0 {
		return -d
	}
	return d
}

// QuoteSwap simulates a swap over the next types.MaxCommittedBins bins in
// dir without changing the pool. Bins the pool has never materialized count
// as empty.
func (p *Pool) QuoteSwap(dir types.SwapDirection, amountIn uint64) (SwapResult, error) {
	if amountIn == 0 {
		return SwapResult{}, types.ErrZeroAmount
	}
	c, err := NewCommitment(solana.PublicKey{}, p.PoolID, SwapBinIDs(p.ActiveBinID, dir, types.MaxCommittedBins))
	if err != nil {
		return SwapResult{}, err
	}
	set, err := openBins(c, solana.PublicKey{}, p.PoolID, p.arena(), true)
	if err != nil {
		return SwapResult{}, err
	}
	r, err := p.walk(set, dir, amountIn)
	if err != nil {
		return SwapResult{}, err
	}
	out, err := fixedpoint.ToUint64(r.amountOut)
	if err != nil {
		return SwapResult{}, err
	}
	destination := p.ReservesB
	if dir == types.SwapBToA {
		destination = p.ReservesA
	}
	if destination < out {
		return SwapResult{}, types.ErrInsufficientLiquidityForSwap.Wrapf("out %d exceeds reserve %d", out, destination)
	}
	return SwapResult{
		AmountOut:   out,
		TotalFee:    r.totalFee,
		LpFee:       r.lpFee,
		ProtocolFee: r.protocolFee,
		FinalBinID:  r.finalBinID,
		BinsCrossed: uint64(absDiff(r.finalBinID, p.ActiveBinID)),
	}, nil
}
