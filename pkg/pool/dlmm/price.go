package dlmm

import (
	"github.com/shopspring/decimal"
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/fixedpoint"
	"github.com/Solana-ZH/dloom/pkg/types"
)

var precisionSquared = types.Precision.Mul(types.Precision)

// GetPriceAtBin returns (1 + binStep/10000)^binID scaled by types.Precision.
// Negative ids are the reciprocal of the positive power.
func GetPriceAtBin(binID int32, binStep uint16) (uint128.Uint128, error) {
	if binStep == 0 {
		return uint128.Zero, types.ErrInvalidBinStep
	}
	base := uint128.From64(types.BasisPointMax + uint64(binStep))
	power := uint32(binID)
	if binID < 0 {
		power = uint32(-int64(binID))
	}
	ratio, err := fixedpoint.PowBps(base, power)
	if err != nil {
		return uint128.Zero, err
	}
	if binID >= 0 {
		return ratio, nil
	}
	return fixedpoint.Div(precisionSquared, ratio)
}

// PriceDecimal renders the bin price as a plain decimal.
func PriceDecimal(binID int32, binStep uint16) (decimal.Decimal, error) {
	price, err := GetPriceAtBin(binID, binStep)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromBigInt(price.Big(), 0).Div(decimal.NewFromInt(types.PrecisionRaw)), nil
}
