// Package oracle integrates spot prices over time so a time-weighted average
// can be read as (cumulativeNow - cumulativePast) / elapsed.
package oracle

import (
	"github.com/shopspring/decimal"
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/fixedpoint"
	"github.com/Solana-ZH/dloom/pkg/types"
)

var scale = uint128.From64(types.OracleScale)

// Observation is the oracle state carried by an AMM pool.
type Observation struct {
	PriceACumulative    uint128.Uint128
	PriceBCumulative    uint128.Uint128
	LastUpdateTimestamp int64
}

// SpotPrices returns reserveB/reserveA and reserveA/reserveB scaled by OracleScale.
func SpotPrices(reserveA, reserveB uint64) (priceA, priceB uint128.Uint128, err error) {
	if reserveA == 0 || reserveB == 0 {
		return uint128.Zero, uint128.Zero, types.ErrInsufficientLiquidity
	}
	priceA, err = fixedpoint.MulDiv(uint128.From64(reserveB), scale, uint128.From64(reserveA))
	if err != nil {
		return uint128.Zero, uint128.Zero, err
	}
	priceB, err = fixedpoint.MulDiv(uint128.From64(reserveA), scale, uint128.From64(reserveB))
	if err != nil {
		return uint128.Zero, uint128.Zero, err
	}
	return priceA, priceB, nil
}

// Update integrates the pre-trade spot price over the time since the last
// update. The first call only records now. The timestamp always advances to
// now, even when an empty reserve leaves the price undefined.
func (o Observation) Update(reserveA, reserveB uint64, now int64) (Observation, error) {
	if o.LastUpdateTimestamp == 0 {
		o.LastUpdateTimestamp = now
		return o, nil
	}
	elapsed := now - o.LastUpdateTimestamp
	if elapsed > 0 && reserveA > 0 && reserveB > 0 {
		priceA, priceB, err := SpotPrices(reserveA, reserveB)
		if err != nil {
			return o, err
		}
		dt := uint128.From64(uint64(elapsed))
		incA, err := fixedpoint.Mul(priceA, dt)
		if err != nil {
			return o, err
		}
		incB, err := fixedpoint.Mul(priceB, dt)
		if err != nil {
			return o, err
		}
		if o.PriceACumulative, err = fixedpoint.Add(o.PriceACumulative, incA); err != nil {
			return o, err
		}
		if o.PriceBCumulative, err = fixedpoint.Add(o.PriceBCumulative, incB); err != nil {
			return o, err
		}
	}
	o.LastUpdateTimestamp = now
	return o, nil
}

// Average returns the time-weighted average prices between two observations,
// still scaled by OracleScale.
func Average(earlier, later Observation) (priceA, priceB uint128.Uint128, err error) {
	elapsed := later.LastUpdateTimestamp - earlier.LastUpdateTimestamp
	if elapsed <= 0 {
		return uint128.Zero, uint128.Zero, types.ErrUpdateNotNeeded.Wrapf("no time elapsed between observations (%d)", elapsed)
	}
	dt := uint128.From64(uint64(elapsed))
	deltaA, err := fixedpoint.Sub(later.PriceACumulative, earlier.PriceACumulative)
	if err != nil {
		return uint128.Zero, uint128.Zero, err
	}
	deltaB, err := fixedpoint.Sub(later.PriceBCumulative, earlier.PriceBCumulative)
	if err != nil {
		return uint128.Zero, uint128.Zero, err
	}
	return deltaA.Div(dt), deltaB.Div(dt), nil
}

// ToDecimal renders a scaled oracle price as a decimal.
func ToDecimal(scaled uint128.Uint128) decimal.Decimal {
	return decimal.NewFromBigInt(scaled.Big(), 0).Div(decimal.NewFromInt(types.OracleScale))
}
