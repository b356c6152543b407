package dlmm

import (
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/events"
	"github.com/Solana-ZH/dloom/pkg/fixedpoint"
	"github.com/Solana-ZH/dloom/pkg/types"
)

// ComputeDynamicFee is the automatic fee for volatility accumulated over
// elapsed seconds: the base rate plus the capped bins-crossed rate.
func ComputeDynamicFee(volatilityAccumulator uint64, elapsed int64) uint16 {
	if elapsed <= 0 {
		return types.BaseFeeRate
	}
	volatility := uint128.From64(volatilityAccumulator).Mul64(types.VolatilityScaleBase).Div64(uint64(elapsed))
	variable := fixedpoint.Min(volatility, uint128.From64(types.MaxVariableFeeRate))
	return types.BaseFeeRate + uint16(variable.Lo)
}

// UpdateFees sets the fee rate of an official pool. A non-nil manual rate is
// applied as given; otherwise the rate is recomputed from the volatility
// accumulator once the cooldown has passed. Both reset the accumulator.
func (p *Pool) UpdateFees(manual *uint16, now int64) (events.FeesUpdated, error) {
	if p.PoolType != types.PoolTypeOfficial {
		return events.FeesUpdated{}, types.ErrInvalidPool.Wrapf("%s pools have fixed fees", p.PoolType)
	}
	var rate uint16
	if manual != nil {
		if *manual > types.BasisPointMax {
			return events.FeesUpdated{}, types.ErrInvalidFeeRates.Wrapf("fee rate %d", *manual)
		}
		rate = *manual
	} else {
		elapsed := now - p.LastFeeUpdateTimestamp
		if elapsed <= types.FeeUpdateCooldown {
			return events.FeesUpdated{}, types.ErrUpdateNotNeeded.Wrapf("%ds since last update", elapsed)
		}
		rate = ComputeDynamicFee(p.VolatilityAccumulator, elapsed)
	}
	p.FeeRate = rate
	p.VolatilityAccumulator = 0
	p.LastFeeUpdateTimestamp = now
	return events.FeesUpdated{Pool: p.PoolID, NewFeeRate: rate, Manual: manual != nil}, nil
}
