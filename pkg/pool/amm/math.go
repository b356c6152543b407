package amm

import (
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/fixedpoint"
	"github.com/Solana-ZH/dloom/pkg/types"
)

// SwapQuote is the fee split and output of one constant-product trade.
type SwapQuote struct {
	AmountIn    uint64
	TotalFee    uint64
	ProtocolFee uint64
	LpFee       uint64
	AmountInNet uint64
	AmountOut   uint64
}

// ComputeSwap prices amountIn against a reserve pair. Every division floors.
func ComputeSwap(amountIn, sourceReserve, destinationReserve uint64, feeRate, protocolFeeShare uint16) (SwapQuote, error) {
	if amountIn == 0 {
		return SwapQuote{}, types.ErrZeroAmount
	}
	if sourceReserve == 0 || destinationReserve == 0 {
		return SwapQuote{}, types.ErrInsufficientLiquidityForSwap.Wrapf("reserves %d/%d", sourceReserve, destinationReserve)
	}
	if feeRate > types.BasisPointMax || protocolFeeShare > types.BasisPointMax {
		return SwapQuote{}, types.ErrInvalidFeeRates
	}
	total, protocol, lp, err := fixedpoint.FeeSplit(amountIn, feeRate, protocolFeeShare)
	if err != nil {
		return SwapQuote{}, err
	}
	net := amountIn - total

	denominator, err := fixedpoint.Add(uint128.From64(sourceReserve), uint128.From64(net))
	if err != nil {
		return SwapQuote{}, err
	}
	out, err := fixedpoint.MulDiv(uint128.From64(destinationReserve), uint128.From64(net), denominator)
	if err != nil {
		return SwapQuote{}, err
	}
	return SwapQuote{
		AmountIn:    amountIn,
		TotalFee:    total,
		ProtocolFee: protocol,
		LpFee:       lp,
		AmountInNet: net,
		AmountOut:   out.Lo, // out < destinationReserve
	}, nil
}

// Deposit is the ratio-preserving part of a requested deposit and the LP units it mints.
type Deposit struct {
	AmountA  uint64
	AmountB  uint64
	LpMinted uint64
}

// ComputeDeposit sizes a deposit. An empty pool mints sqrt(a*b); otherwise
// the deposit is cut down to the reserve ratio and mints the smaller of the
// two implied shares.
func ComputeDeposit(reserveA, reserveB, lpSupply, amountADesired, amountBDesired uint64) (Deposit, error) {
	if lpSupply == 0 {
		lp, err := fixedpoint.Sqrt64(amountADesired, amountBDesired)
		if err != nil {
			return Deposit{}, err
		}
		return Deposit{AmountA: amountADesired, AmountB: amountBDesired, LpMinted: lp}, nil
	}

	optimalB, err := fixedpoint.MulDiv64(amountADesired, reserveB, reserveA)
	if err != nil {
		return Deposit{}, err
	}
	d := Deposit{AmountA: amountADesired, AmountB: optimalB}
	if optimalB > amountBDesired {
		optimalA, err := fixedpoint.MulDiv64(amountBDesired, reserveA, reserveB)
		if err != nil {
			return Deposit{}, err
		}
		d = Deposit{AmountA: optimalA, AmountB: amountBDesired}
	}

	fromA, err := fixedpoint.MulDiv64(d.AmountA, lpSupply, reserveA)
	if err != nil {
		return Deposit{}, err
	}
	fromB, err := fixedpoint.MulDiv64(d.AmountB, lpSupply, reserveB)
	if err != nil {
		return Deposit{}, err
	}
	d.LpMinted = min(fromA, fromB)
	return d, nil
}

// ComputeWithdrawal returns the reserves owed for burning lpBurn of lpSupply.
func ComputeWithdrawal(reserveA, reserveB, lpSupply, lpBurn uint64) (uint64, uint64, error) {
	if lpSupply == 0 {
		return 0, 0, types.ErrInsufficientLiquidity.Wrap("lp supply is zero")
	}
	a, err := fixedpoint.MulDiv64(reserveA, lpBurn, lpSupply)
	if err != nil {
		return 0, 0, err
	}
	b, err := fixedpoint.MulDiv64(reserveB, lpBurn, lpSupply)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
