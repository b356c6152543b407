package dlmm

import (
	"slices"

	"github.com/gagliardetto/solana-go"

	"github.com/Solana-ZH/dloom/pkg/events"
	"github.com/Solana-ZH/dloom/pkg/types"
)

// Parameter is one admitted (bin step, fee rate) pair.
type Parameter struct {
	BinStep uint16 `json:"bin_step" mapstructure:"bin_step"`
	FeeRate uint16 `json:"fee_rate" mapstructure:"fee_rate"`
}

// Parameters are the allow-lists gating pool creation.
type Parameters struct {
	Authority solana.PublicKey
	Official  []Parameter
	Community []Parameter
}

func (ps *Parameters) list(l types.ParameterList) *[]Parameter {
	if l == types.ParameterListCommunity {
		return &ps.Community
	}
	return &ps.Official
}

// Allowed reports whether the pair is on list l.
func (ps *Parameters) Allowed(l types.ParameterList, binStep, feeRate uint16) bool {
	if ps == nil {
		return false
	}
	return slices.Contains(*ps.list(l), Parameter{BinStep: binStep, FeeRate: feeRate})
}

// Update adds or removes a pair. Adding a present pair is a no-op.
func (ps *Parameters) Update(l types.ParameterList, action types.ParameterAction, binStep, feeRate uint16) events.ParametersChanged {
	target := ps.list(l)
	param := Parameter{BinStep: binStep, FeeRate: feeRate}
	switch action {
	case types.ParameterActionAdd:
		if !slices.Contains(*target, param) {
			*target = append(*target, param)
		}
	case types.ParameterActionRemove:
		*target = slices.DeleteFunc(*target, func(p Parameter) bool { return p == param })
	}
	return events.ParametersChanged{List: l, Action: action, BinStep: binStep, FeeRate: feeRate}
}
