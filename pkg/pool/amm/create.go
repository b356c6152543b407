package amm

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Solana-ZH/dloom/pkg/events"
	"github.com/Solana-ZH/dloom/pkg/sol"
	"github.com/Solana-ZH/dloom/pkg/types"
)

// CreateParams describes a new pool.
type CreateParams struct {
	ProgramID        solana.PublicKey
	Authority        solana.PublicKey
	MintA            solana.PublicKey
	MintB            solana.PublicKey
	FeeRate          uint16
	ProtocolFeeShare uint16
	ReferrerFeeShare uint16
}

// NewPool validates params and returns an empty pool with its derived addresses.
func NewPool(params CreateParams) (*Pool, events.PoolCreated, error) {
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
	poolID, bump := sol.DeriveAmmPoolPDA(programID, params.MintA, params.MintB)
	lpMint, _ := sol.DeriveLpMintPDA(programID, poolID)
	vaultA, _ := sol.DeriveVaultPDA(programID, poolID, params.MintA)
	vaultB, _ := sol.DeriveVaultPDA(programID, poolID, params.MintB)
	feeVaultA, _ := sol.DeriveProtocolFeeVaultPDA(programID, poolID, params.MintA)
	feeVaultB, _ := sol.DeriveProtocolFeeVaultPDA(programID, poolID, params.MintB)

	pool := &Pool{
		Bump:              bump,
		Authority:         params.Authority,
		TokenAMint:        params.MintA,
		TokenBMint:        params.MintB,
		TokenAVault:       vaultA,
		TokenBVault:       vaultB,
		LpMint:            lpMint,
		FeeRate:           params.FeeRate,
		ProtocolFeeShare:  params.ProtocolFeeShare,
		ReferrerFeeShare:  params.ReferrerFeeShare,
		ProtocolFeeVaultA: feeVaultA,
		ProtocolFeeVaultB: feeVaultB,
		PoolID:            poolID,
	}
	return pool, events.PoolCreated{
		Pool:    poolID,
		Design:  "amm",
		MintA:   params.MintA,
		MintB:   params.MintB,
		FeeRate: params.FeeRate,
	}, nil
}
