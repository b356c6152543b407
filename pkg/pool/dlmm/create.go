package dlmm

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Solana-ZH/dloom/pkg/events"
	"github.com/Solana-ZH/dloom/pkg/sol"
	"github.com/Solana-ZH/dloom/pkg/types"
)

// CreateParams describes a new pool. PoolType selects the allow-list the
// (BinStep, FeeRate) pair is checked against.
type CreateParams struct {
	ProgramID        solana.PublicKey
	Authority        solana.PublicKey
	PoolType         types.PoolType
	MintA            solana.PublicKey
	MintB            solana.PublicKey
	BinStep          uint16
	FeeRate          uint16
	ProtocolFeeShare uint16
	ReferrerFeeShare uint16
	InitialBinID     int32
	Now              int64
}

// NewPool validates params against the allow-lists and returns an empty pool.
func NewPool(params CreateParams, allowed *Parameters) (*Pool, events.PoolCreated, error) {
	if params.BinStep == 0 {
		return nil, events.PoolCreated{}, types.ErrInvalidBinStep
	}
	list := types.ParameterListOfficial
	if params.PoolType == types.PoolTypeCommunity {
		list = types.ParameterListCommunity
	}
	if !allowed.Allowed(list, params.BinStep, params.FeeRate) {
		return nil, events.PoolCreated{}, types.ErrInvalidParameters.Wrapf("bin step %d fee %d not on the %s list", params.BinStep, params.FeeRate, list)
	}
	if err := types.ValidateFeeRates(params.FeeRate, params.ProtocolFeeShare, params.ReferrerFeeShare); err != nil {
		return nil, events.PoolCreated{}, err
	}
	if err := types.CheckMintOrder(params.MintA, params.MintB); err != nil {
		return nil, events.PoolCreated{}, err
	}

	programID := params.ProgramID
	if programID.IsZero() {
		programID = sol.ProgramID
	}
	poolID, bump := sol.DeriveDlmmPoolPDA(programID, params.MintA, params.MintB, params.BinStep)
	vaultA, _ := sol.DeriveVaultPDA(programID, poolID, params.MintA)
	vaultB, _ := sol.DeriveVaultPDA(programID, poolID, params.MintB)
	feeVaultA, _ := sol.DeriveProtocolFeeVaultPDA(programID, poolID, params.MintA)
	feeVaultB, _ := sol.DeriveProtocolFeeVaultPDA(programID, poolID, params.MintB)

	pool := &Pool{
		Bump:                   bump,
		Authority:              params.Authority,
		PoolType:               params.PoolType,
		TokenAMint:             params.MintA,
		TokenBMint:             params.MintB,
		TokenAVault:            vaultA,
		TokenBVault:            vaultB,
		ActiveBinID:            params.InitialBinID,
		BinStep:                params.BinStep,
		FeeRate:                params.FeeRate,
		ProtocolFeeShare:       params.ProtocolFeeShare,
		ReferrerFeeShare:       params.ReferrerFeeShare,
		ProtocolFeeVaultA:      feeVaultA,
		ProtocolFeeVaultB:      feeVaultB,
		LastFeeUpdateTimestamp: params.Now,
		PoolID:                 poolID,
		Bins:                   Bins{},
	}
	return pool, events.PoolCreated{
		Pool:     poolID,
		Design:   "dlmm",
		MintA:    params.MintA,
		MintB:    params.MintB,
		FeeRate:  params.FeeRate,
		BinStep:  params.BinStep,
		PoolType: params.PoolType,
	}, nil
}
