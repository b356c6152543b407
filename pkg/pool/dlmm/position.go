package dlmm

import (
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/events"
	"github.com/Solana-ZH/dloom/pkg/feegrowth"
	"github.com/Solana-ZH/dloom/pkg/sol"
	"github.com/Solana-ZH/dloom/pkg/types"
)

// Position is liquidity spread uniformly over [LowerBinID, UpperBinID] in
// steps of the pool's bin step. Ownership follows PositionMint.
type Position struct {
	Pool         solana.PublicKey
	Owner        solana.PublicKey
	LowerBinID   int32
	UpperBinID   int32
	Liquidity    uint128.Uint128
	PositionMint solana.PublicKey
	// Snapshot is the highest bin growth seen at the last interaction.
	Snapshot feegrowth.Growth

	Address solana.PublicKey `bin:"skip"`
}

// OpenPosition validates a range and returns an empty position over it.
// Both ends must be multiples of the bin step.
func (p *Pool) OpenPosition(owner, positionMint solana.PublicKey, lower, upper int32) (*Position, events.PositionOpened, error) {
	if err := ValidateRange(lower, upper, p.BinStep); err != nil {
		return nil, events.PositionOpened{}, err
	}
	address, _ := sol.DerivePositionPDA(sol.ProgramID, positionMint)
	pos := &Position{
		Pool:         p.PoolID,
		Owner:        owner,
		LowerBinID:   lower,
		UpperBinID:   upper,
		PositionMint: positionMint,
		Address:      address,
	}
	return pos, events.PositionOpened{
		Pool:       p.PoolID,
		Owner:      owner,
		Position:   address,
		LowerBinID: lower,
		UpperBinID: upper,
	}, nil
}

// ValidateRange checks ordering, step alignment and width of a bin range.
func ValidateRange(lower, upper int32, binStep uint16) error {
	if binStep == 0 {
		return types.ErrInvalidBinStep
	}
	if lower >= upper {
		return types.ErrInvalidBinRange.Wrapf("lower %d upper %d", lower, upper)
	}
	step := int64(binStep)
	if int64(lower)%step != 0 || int64(upper)%step != 0 {
		return types.ErrInvalidBinID.Wrapf("range [%d, %d] not aligned to step %d", lower, upper, binStep)
	}
	if (int64(upper)-int64(lower))/step > types.MaxBinsPerPosition {
		return types.ErrRangeTooWide.Wrapf("range [%d, %d] spans more than %d steps", lower, upper, types.MaxBinsPerPosition)
	}
	return nil
}

// BinIDs lists the ids covered by a range.
func BinIDs(lower, upper int32, binStep uint16) []int32 {
	if binStep == 0 || upper < lower {
		return nil
	}
	ids := make([]int32, 0, (int64(upper)-int64(lower))/int64(binStep)+1)
	for id := int64(lower); id <= int64(upper); id += int64(binStep) {
		ids = append(ids, int32(id))
	}
	return ids
}

// BinIDs lists the ids the position covers.
func (pos *Position) BinIDs(binStep uint16) []int32 {
	return BinIDs(pos.LowerBinID, pos.UpperBinID, binStep)
}

// PerBin is the liquidity the position holds in each covered bin. The
// remainder of the uniform split is not attributed to any bin.
func (pos *Position) PerBin(binStep uint16) uint128.Uint128 {
	n := len(pos.BinIDs(binStep))
	if n == 0 {
		return uint128.Zero
	}
	return pos.Liquidity.Div64(uint64(n))
}

// BurnPosition closes an empty position.
func (p *Pool) BurnPosition(pos *Position) (events.PositionClosed, error) {
	if !pos.Liquidity.IsZero() {
		return events.PositionClosed{}, types.ErrPositionNotEmpty.Wrapf("liquidity %s", pos.Liquidity)
	}
	return events.PositionClosed{Position: pos.Address, Owner: pos.Owner}, nil
}
