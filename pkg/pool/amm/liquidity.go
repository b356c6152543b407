package amm

import (
	"strconv"

	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/events"
	"github.com/Solana-ZH/dloom/pkg/fixedpoint"
	"github.com/Solana-ZH/dloom/pkg/types"
)

// LiquidityResult is the settlement of a deposit or withdrawal. AmountA and
// AmountB move between the owner and the vaults; FeesA and FeesB are pending
// fees paid out to the owner alongside.
type LiquidityResult struct {
	AmountA  uint64
	AmountB  uint64
	LpAmount uint64
	FeesA    uint64
	FeesB    uint64
	Event    events.LiquidityChanged
}

// AddLiquidity deposits up to the desired amounts at the current reserve
// ratio. Pending fees are paid out first so the new units only earn growth
// from this point on.
func (p *Pool) AddLiquidity(pos *Position, amountADesired, amountBDesired, minLpOut, lpSupply uint64, now int64) (LiquidityResult, error) {
	if err := p.ensurePosition(pos); err != nil {
		return LiquidityResult{}, err
	}
	if amountADesired == 0 || amountBDesired == 0 {
		return LiquidityResult{}, types.ErrZeroAmount
	}

	next, nextPos := *p, *pos
	var err error
	if next.Oracle, err = p.Oracle.Update(p.ReservesA, p.ReservesB, now); err != nil {
		return LiquidityResult{}, err
	}

	feesA, feesB, err := next.settle(&nextPos)
	if err != nil {
		return LiquidityResult{}, err
	}

	d, err := ComputeDeposit(next.ReservesA, next.ReservesB, lpSupply, amountADesired, amountBDesired)
	if err != nil {
		return LiquidityResult{}, err
	}
	if d.LpMinted == 0 {
		return LiquidityResult{}, types.ErrZeroLiquidity
	}
	if d.LpMinted < minLpOut {
		return LiquidityResult{}, types.ErrSlippageExceeded.Wrapf("minted %d below minimum %d", d.LpMinted, minLpOut)
	}

	if next.ReservesA, err = add64(next.ReservesA, d.AmountA); err != nil {
		return LiquidityResult{}, err
	}
	if next.ReservesB, err = add64(next.ReservesB, d.AmountB); err != nil {
		return LiquidityResult{}, err
	}
	if nextPos.LpTokenAmount, err = add64(nextPos.LpTokenAmount, d.LpMinted); err != nil {
		return LiquidityResult{}, err
	}

	*p, *pos = next, nextPos
	return LiquidityResult{
		AmountA:  d.AmountA,
		AmountB:  d.AmountB,
		LpAmount: d.LpMinted,
		FeesA:    feesA,
		FeesB:    feesB,
		Event: events.LiquidityChanged{
			Pool:    p.PoolID,
			Owner:   pos.Owner,
			Deposit: true,
			Units:   strconv.FormatUint(d.LpMinted, 10),
			AmountA: d.AmountA,
			AmountB: d.AmountB,
			FeesA:   feesA,
			FeesB:   feesB,
		},
	}, nil
}

// RemoveLiquidity burns lpBurn units of pos for their share of the reserves.
func (p *Pool) RemoveLiquidity(pos *Position, lpBurn, minAmountA, minAmountB, lpSupply uint64, now int64) (LiquidityResult, error) {
	if err := p.ensurePosition(pos); err != nil {
		return LiquidityResult{}, err
	}
	if lpBurn == 0 {
		return LiquidityResult{}, types.ErrZeroAmount
	}
	if lpBurn > pos.LpTokenAmount || lpBurn > lpSupply {
		return LiquidityResult{}, types.ErrInsufficientLiquidity.Wrapf("burn %d of position %d, supply %d", lpBurn, pos.LpTokenAmount, lpSupply)
	}

	next := *p
	var err error
	if next.Oracle, err = p.Oracle.Update(p.ReservesA, p.ReservesB, now); err != nil {
		return LiquidityResult{}, err
	}

	amountA, amountB, err := ComputeWithdrawal(p.ReservesA, p.ReservesB, lpSupply, lpBurn)
	if err != nil {
		return LiquidityResult{}, err
	}
	if amountA < minAmountA || amountB < minAmountB {
		return LiquidityResult{}, types.ErrSlippageExceeded.Wrapf("withdrawal %d/%d below minimum %d/%d", amountA, amountB, minAmountA, minAmountB)
	}

	next.ReservesA -= amountA
	next.ReservesB -= amountB
	*p = next
	pos.LpTokenAmount -= lpBurn
	return LiquidityResult{
		AmountA:  amountA,
		AmountB:  amountB,
		LpAmount: lpBurn,
		Event: events.LiquidityChanged{
			Pool:    p.PoolID,
			Owner:   pos.Owner,
			Units:   strconv.FormatUint(lpBurn, 10),
			AmountA: amountA,
			AmountB: amountB,
		},
	}, nil
}

// settle pays out the pending fees of pos from the reserves and advances its snapshot.
func (p *Pool) settle(pos *Position) (uint64, uint64, error) {
	feesA, feesB, err := p.FeeGrowth.Pending(pos.Snapshot, uint128.From64(pos.LpTokenAmount))
	if err != nil {
		return 0, 0, err
	}
	if feesA > p.ReservesA || feesB > p.ReservesB {
		return 0, 0, types.ErrInsufficientLiquidity.Wrapf("fees %d/%d exceed reserves %d/%d", feesA, feesB, p.ReservesA, p.ReservesB)
	}
	p.ReservesA -= feesA
	p.ReservesB -= feesB
	pos.Snapshot = p.FeeGrowth
	return feesA, feesB, nil
}

func add64(a, b uint64) (uint64, error) {
	return fixedpoint.ToUint64(uint128.From64(a).Add64(b))
}
