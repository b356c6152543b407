package dlmm

import (
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/events"
	"github.com/Solana-ZH/dloom/pkg/fixedpoint"
	"github.com/Solana-ZH/dloom/pkg/types"
)

// MigrationResult is the settlement of moving liquidity between ranges.
// Surplus includes the fees the old range had earned; Fees are those the
// destination position had earned before the move.
type MigrationResult struct {
	Liquidity uint128.Uint128
	SurplusA  uint64
	SurplusB  uint64
	FeesA     uint64
	FeesB     uint64
	Event     events.LiquidityMigrated
}

// ModifyLiquidity moves all of from's liquidity into to. The old range must
// release at least what the new range needs in each asset and the
// difference must reach the minimums. The commitment covers both ranges.
func (p *Pool) ModifyLiquidity(from, to *Position, minSurplusA, minSurplusB uint64, c *Commitment) (MigrationResult, error) {
	if err := p.checkPosition(from); err != nil {
		return MigrationResult{}, err
	}
	if err := p.checkPosition(to); err != nil {
		return MigrationResult{}, err
	}
	if from == to {
		return MigrationResult{}, types.ErrInvalidBinRange.Wrap("source and destination are the same position")
	}
	if !from.Owner.Equals(to.Owner) {
		return MigrationResult{}, types.ErrUnauthorized.Wrapf("destination owned by %s", to.Owner)
	}
	if from.Liquidity.IsZero() {
		return MigrationResult{}, types.ErrZeroLiquidity.Wrap("source position is empty")
	}
	amount := from.Liquidity
	oldIDs, newIDs := from.BinIDs(p.BinStep), to.BinIDs(p.BinStep)
	newPerBin := amount.Div64(uint64(len(newIDs)))
	if newPerBin.IsZero() {
		return MigrationResult{}, types.ErrZeroLiquidity.Wrapf("%s over %d bins", amount, len(newIDs))
	}

	arena := p.arena()
	set, err := openBins(c, from.Owner, p.PoolID, arena, true)
	if err != nil {
		return MigrationResult{}, err
	}
	if err := set.require(oldIDs); err != nil {
		return MigrationResult{}, err
	}
	if err := set.require(newIDs); err != nil {
		return MigrationResult{}, err
	}

	principalA, principalB, err := p.ClaimableAmounts(from, amount)
	if err != nil {
		return MigrationResult{}, err
	}
	oldFeesA, oldFeesB, oldHighest, err := rangeFees(set, oldIDs, from.Snapshot, from.PerBin(p.BinStep))
	if err != nil {
		return MigrationResult{}, err
	}
	claimableA, err := add64(principalA, oldFeesA)
	if err != nil {
		return MigrationResult{}, err
	}
	claimableB, err := add64(principalB, oldFeesB)
	if err != nil {
		return MigrationResult{}, err
	}
	requiredA, requiredB, err := p.RequiredAmounts(to.LowerBinID, to.UpperBinID, amount)
	if err != nil {
		return MigrationResult{}, err
	}
	if requiredA > claimableA || requiredB > claimableB {
		return MigrationResult{}, types.ErrInsufficientSurplus.Wrapf("required %d/%d, claimable %d/%d", requiredA, requiredB, claimableA, claimableB)
	}
	surplusA, surplusB := claimableA-requiredA, claimableB-requiredB
	if surplusA < minSurplusA || surplusB < minSurplusB {
		return MigrationResult{}, types.ErrSlippageExceeded.Wrapf("surplus %d/%d below minimum %d/%d", surplusA, surplusB, minSurplusA, minSurplusB)
	}
	feesA, feesB, newHighest, err := rangeFees(set, newIDs, to.Snapshot, to.PerBin(p.BinStep))
	if err != nil {
		return MigrationResult{}, err
	}
	liquidity, err := fixedpoint.Add(to.Liquidity, amount)
	if err != nil {
		return MigrationResult{}, err
	}

	next := *p
	if next.ReservesA, next.ReservesB, err = payout(p.ReservesA, p.ReservesB, surplusA, surplusB); err != nil {
		return MigrationResult{}, err
	}
	if next.ReservesA, next.ReservesB, err = payout(next.ReservesA, next.ReservesB, feesA, feesB); err != nil {
		return MigrationResult{}, err
	}
	oldPerBin := from.PerBin(p.BinStep)
	for _, id := range oldIDs {
		b := set.bins[id]
		b.Liquidity = fixedpoint.SaturatingSub(b.Liquidity, oldPerBin)
	}
	for _, id := range newIDs {
		b := set.bins[id]
		if b.Liquidity, err = fixedpoint.Add(b.Liquidity, newPerBin); err != nil {
			return MigrationResult{}, err
		}
	}

	if err := set.commit(arena); err != nil {
		return MigrationResult{}, err
	}
	*p = next
	from.Liquidity = uint128.Zero
	from.Snapshot = oldHighest
	to.Liquidity = liquidity
	to.Snapshot = newHighest
	return MigrationResult{
		Liquidity: amount,
		SurplusA:  surplusA,
		SurplusB:  surplusB,
		FeesA:     feesA,
		FeesB:     feesB,
		Event: events.LiquidityMigrated{
			Pool:        p.PoolID,
			Owner:       from.Owner,
			OldPosition: from.Address,
			NewPosition: to.Address,
			Liquidity:   amount.String(),
			SurplusA:    surplusA,
			SurplusB:    surplusB,
		},
	}, nil
}
