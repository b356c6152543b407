package amm

import (
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/events"
	"github.com/Solana-ZH/dloom/pkg/types"
)

// FeeResult is the outcome of a claim or a reinvest.
type FeeResult struct {
	AmountA  uint64
	AmountB  uint64
	LpMinted uint64
	Event    events.FeesClaimed
}

// Claim pays out the fees pos has accrued since its snapshot.
func (p *Pool) Claim(pos *Position) (FeeResult, error) {
	if err := p.ensurePosition(pos); err != nil {
		return FeeResult{}, err
	}
	if pos.FeePreference != types.FeePreferenceClaim {
		return FeeResult{}, types.ErrInvalidFeePreference.Wrapf("position prefers %s", pos.FeePreference)
	}
	next, nextPos := *p, *pos
	feesA, feesB, err := next.settle(&nextPos)
	if err != nil {
		return FeeResult{}, err
	}
	*p, *pos = next, nextPos
	return FeeResult{
		AmountA: feesA,
		AmountB: feesB,
		Event:   events.FeesClaimed{Pool: p.PoolID, Owner: pos.Owner, AmountA: feesA, AmountB: feesB},
	}, nil
}

// Reinvest compounds the pending fees of pos into new LP units. The snapshot
// moves before the mint is sized, so a mint that rounds to zero forfeits the
// pending fees and is otherwise a no-op. Reserves do not change: the fees are
// already in the vaults.
func (p *Pool) Reinvest(pos *Position, lpSupply uint64) (FeeResult, error) {
	if err := p.ensurePosition(pos); err != nil {
		return FeeResult{}, err
	}
	if pos.FeePreference != types.FeePreferenceAutoCompound {
		return FeeResult{}, types.ErrInvalidFeePreference.Wrapf("position prefers %s", pos.FeePreference)
	}
	feesA, feesB, err := p.FeeGrowth.Pending(pos.Snapshot, uint128.From64(pos.LpTokenAmount))
	if err != nil {
		return FeeResult{}, err
	}
	nextPos := *pos
	nextPos.Snapshot = p.FeeGrowth

	d, err := ComputeDeposit(p.ReservesA, p.ReservesB, lpSupply, feesA, feesB)
	if err != nil {
		return FeeResult{}, err
	}
	if nextPos.LpTokenAmount, err = add64(nextPos.LpTokenAmount, d.LpMinted); err != nil {
		return FeeResult{}, err
	}
	*pos = nextPos
	return FeeResult{
		AmountA:  feesA,
		AmountB:  feesB,
		LpMinted: d.LpMinted,
		Event: events.FeesClaimed{
			Pool:       p.PoolID,
			Owner:      pos.Owner,
			AmountA:    feesA,
			AmountB:    feesB,
			Reinvested: true,
			LpMinted:   d.LpMinted,
		},
	}, nil
}

// UpdateFeePreference switches how pos settles fees.
func (p *Pool) UpdateFeePreference(pos *Position, preference types.FeePreference) error {
	if err := p.ensurePosition(pos); err != nil {
		return err
	}
	if !preference.Valid() {
		return types.ErrInvalidFeePreference.Wrapf("unknown preference %d", preference)
	}
	pos.FeePreference = preference
	return nil
}

// SetFeeRate applies a manual fee rate and records the oracle reading it was set against.
func (p *Pool) SetFeeRate(feeRate uint16, now int64) (events.FeesUpdated, error) {
	if feeRate > types.BasisPointMax {
		return events.FeesUpdated{}, types.ErrInvalidFeeRates.Wrapf("fee rate %d", feeRate)
	}
	p.FeeRate = feeRate
	p.LastFeeUpdateTimestamp = now
	p.PriceACumulativeLastFeeUpdate = p.Oracle.PriceACumulative
	return events.FeesUpdated{Pool: p.PoolID, NewFeeRate: feeRate, Manual: true}, nil
}
