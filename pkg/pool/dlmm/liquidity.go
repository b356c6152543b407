package dlmm

import (
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/events"
	"github.com/Solana-ZH/dloom/pkg/feegrowth"
	"github.com/Solana-ZH/dloom/pkg/fixedpoint"
	"github.com/Solana-ZH/dloom/pkg/types"
)

// AmountsForBin is the token split of liquidity held in bin id. Bins above
// the active one hold only A, bins below only B, the active bin both.
func AmountsForBin(activeID, id int32, binStep uint16, liquidity uint128.Uint128) (uint128.Uint128, uint128.Uint128, error) {
	if id > activeID {
		return liquidity, uint128.Zero, nil
	}
	price, err := GetPriceAtBin(id, binStep)
	if err != nil {
		return uint128.Zero, uint128.Zero, err
	}
	b, err := fixedpoint.MulDiv(liquidity, price, types.Precision)
	if err != nil {
		return uint128.Zero, uint128.Zero, err
	}
	if id < activeID {
		return uint128.Zero, b, nil
	}
	return liquidity, b, nil
}

// AmountsForRange sums AmountsForBin over [lower, upper] with amount split
// evenly across the bins. The division remainder is dropped.
func AmountsForRange(activeID, lower, upper int32, binStep uint16, amount uint128.Uint128) (uint64, uint64, error) {
	ids := BinIDs(lower, upper, binStep)
	if len(ids) == 0 {
		return 0, 0, nil
	}
	perBin := amount.Div64(uint64(len(ids)))
	var totalA, totalB uint128.Uint128
	for _, id := range ids {
		a, b, err := AmountsForBin(activeID, id, binStep, perBin)
		if err != nil {
			return 0, 0, err
		}
		if totalA, err = fixedpoint.Add(totalA, a); err != nil {
			return 0, 0, err
		}
		if totalB, err = fixedpoint.Add(totalB, b); err != nil {
			return 0, 0, err
		}
	}
	a, err := fixedpoint.ToUint64(totalA)
	if err != nil {
		return 0, 0, err
	}
	b, err := fixedpoint.ToUint64(totalB)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// RequiredAmounts is what depositing amount over [lower, upper] costs.
func (p *Pool) RequiredAmounts(lower, upper int32, amount uint128.Uint128) (uint64, uint64, error) {
	return AmountsForRange(p.ActiveBinID, lower, upper, p.BinStep, amount)
}

// ClaimableAmounts is the principal returned for removing amount from pos.
func (p *Pool) ClaimableAmounts(pos *Position, amount uint128.Uint128) (uint64, uint64, error) {
	return AmountsForRange(p.ActiveBinID, pos.LowerBinID, pos.UpperBinID, p.BinStep, amount)
}

// AccruedFees is what units held in b have earned since snapshot.
func AccruedFees(snapshot feegrowth.Growth, units uint128.Uint128, b *Bin) (uint64, uint64, error) {
	return b.FeeGrowth.Pending(snapshot, units)
}

// LiquidityResult is the settlement of a deposit or withdrawal. Fees are paid
// to the owner on top of the principal.
type LiquidityResult struct {
	AmountA uint64
	AmountB uint64
	FeesA   uint64
	FeesB   uint64
	Event   events.LiquidityChanged
}

// rangeFees sums the fees a position with perBin units earns over ids and
// returns the highest growth seen alongside.
func rangeFees(set *binSet, ids []int32, snapshot feegrowth.Growth, perBin uint128.Uint128) (uint64, uint64, feegrowth.Growth, error) {
	var feesA, feesB uint64
	highest := snapshot
	for _, id := range ids {
		b, err := set.get(id)
		if err != nil {
			return 0, 0, feegrowth.Growth{}, err
		}
		a, bb, err := AccruedFees(snapshot, perBin, b)
		if err != nil {
			return 0, 0, feegrowth.Growth{}, err
		}
		if feesA, err = add64(feesA, a); err != nil {
			return 0, 0, feegrowth.Growth{}, err
		}
		if feesB, err = add64(feesB, bb); err != nil {
			return 0, 0, feegrowth.Growth{}, err
		}
		highest = feegrowth.Max(highest, b.FeeGrowth)
	}
	return feesA, feesB, highest, nil
}

// AddLiquidity deposits amount over the position's range. Fees earned by
// liquidity already in the position are paid out and the snapshot moves to
// the highest growth across the range. Bins are created on first deposit.
func (p *Pool) AddLiquidity(pos *Position, amount uint128.Uint128, c *Commitment) (LiquidityResult, error) {
	if err := p.checkPosition(pos); err != nil {
		return LiquidityResult{}, err
	}
	ids := pos.BinIDs(p.BinStep)
	perBin := amount.Div64(uint64(len(ids)))
	if perBin.IsZero() {
		return LiquidityResult{}, types.ErrZeroLiquidity.Wrapf("%s over %d bins", amount, len(ids))
	}
	arena := p.arena()
	set, err := openBins(c, pos.Owner, p.PoolID, arena, true)
	if err != nil {
		return LiquidityResult{}, err
	}
	if err := set.require(ids); err != nil {
		return LiquidityResult{}, err
	}

	requiredA, requiredB, err := p.RequiredAmounts(pos.LowerBinID, pos.UpperBinID, amount)
	if err != nil {
		return LiquidityResult{}, err
	}
	feesA, feesB, highest, err := rangeFees(set, ids, pos.Snapshot, pos.PerBin(p.BinStep))
	if err != nil {
		return LiquidityResult{}, err
	}
	for _, id := range ids {
		b := set.bins[id]
		if b.Liquidity, err = fixedpoint.Add(b.Liquidity, perBin); err != nil {
			return LiquidityResult{}, err
		}
	}
	liquidity, err := fixedpoint.Add(pos.Liquidity, amount)
	if err != nil {
		return LiquidityResult{}, err
	}

	next := *p
	if next.ReservesA, err = add64(p.ReservesA, requiredA); err != nil {
		return LiquidityResult{}, err
	}
	if next.ReservesB, err = add64(p.ReservesB, requiredB); err != nil {
		return LiquidityResult{}, err
	}
	if next.ReservesA, next.ReservesB, err = payout(next.ReservesA, next.ReservesB, feesA, feesB); err != nil {
		return LiquidityResult{}, err
	}

	if err := set.commit(arena); err != nil {
		return LiquidityResult{}, err
	}
	*p = next
	pos.Liquidity = liquidity
	pos.Snapshot = highest
	return LiquidityResult{
		AmountA: requiredA,
		AmountB: requiredB,
		FeesA:   feesA,
		FeesB:   feesB,
		Event: events.LiquidityChanged{
			Pool:    p.PoolID,
			Owner:   pos.Owner,
			Deposit: true,
			Units:   amount.String(),
			AmountA: requiredA,
			AmountB: requiredB,
			FeesA:   feesA,
			FeesB:   feesB,
		},
	}, nil
}

// RemoveLiquidity withdraws amount from the position's range together with
// the fees the position has earned. Bins give up their per-bin share of amount.
func (p *Pool) RemoveLiquidity(pos *Position, amount uint128.Uint128, minAmountA, minAmountB uint64, c *Commitment) (LiquidityResult, error) {
	if err := p.checkPosition(pos); err != nil {
		return LiquidityResult{}, err
	}
	if amount.IsZero() {
		return LiquidityResult{}, types.ErrZeroLiquidity
	}
	if amount.Cmp(pos.Liquidity) > 0 {
		return LiquidityResult{}, types.ErrInsufficientLiquidity.Wrapf("remove %s of %s", amount, pos.Liquidity)
	}
	arena := p.arena()
	set, err := openBins(c, pos.Owner, p.PoolID, arena, false)
	if err != nil {
		return LiquidityResult{}, err
	}
	ids := pos.BinIDs(p.BinStep)
	if err := set.require(ids); err != nil {
		return LiquidityResult{}, err
	}

	principalA, principalB, err := p.ClaimableAmounts(pos, amount)
	if err != nil {
		return LiquidityResult{}, err
	}
	feesA, feesB, highest, err := rangeFees(set, ids, pos.Snapshot, pos.PerBin(p.BinStep))
	if err != nil {
		return LiquidityResult{}, err
	}
	totalA, err := add64(principalA, feesA)
	if err != nil {
		return LiquidityResult{}, err
	}
	totalB, err := add64(principalB, feesB)
	if err != nil {
		return LiquidityResult{}, err
	}
	if totalA < minAmountA || totalB < minAmountB {
		return LiquidityResult{}, types.ErrSlippageExceeded.Wrapf("withdrawal %d/%d below minimum %d/%d", totalA, totalB, minAmountA, minAmountB)
	}

	next := *p
	if next.ReservesA, next.ReservesB, err = payout(p.ReservesA, p.ReservesB, totalA, totalB); err != nil {
		return LiquidityResult{}, err
	}
	perBin := amount.Div64(uint64(len(ids)))
	for _, id := range ids {
		b := set.bins[id]
		// swaps selling B drain bin liquidity, so the bin share may already be gone
		b.Liquidity = fixedpoint.SaturatingSub(b.Liquidity, perBin)
	}

	if err := set.commit(arena); err != nil {
		return LiquidityResult{}, err
	}
	*p = next
	pos.Liquidity = pos.Liquidity.Sub(amount)
	pos.Snapshot = highest
	return LiquidityResult{
		AmountA: principalA,
		AmountB: principalB,
		FeesA:   feesA,
		FeesB:   feesB,
		Event: events.LiquidityChanged{
			Pool:    p.PoolID,
			Owner:   pos.Owner,
			Units:   amount.String(),
			AmountA: principalA,
			AmountB: principalB,
			FeesA:   feesA,
			FeesB:   feesB,
		},
	}, nil
}

func (p *Pool) checkPosition(pos *Position) error {
	if pos == nil || !pos.Pool.Equals(p.PoolID) {
		return types.ErrInvalidPool.Wrap("position belongs to another pool")
	}
	return ValidateRange(pos.LowerBinID, pos.UpperBinID, p.BinStep)
}

// payout takes amounts out of the reserves.
func payout(reserveA, reserveB, amountA, amountB uint64) (uint64, uint64, error) {
	if amountA > reserveA || amountB > reserveB {
		return 0, 0, types.ErrInsufficientLiquidity.Wrapf("payout %d/%d exceeds reserves %d/%d", amountA, amountB, reserveA, reserveB)
	}
	return reserveA - amountA, reserveB - amountB, nil
}

func add64(a, b uint64) (uint64, error) {
	return fixedpoint.ToUint64(uint128.From64(a).Add64(b))
}
