package sol

import "github.com/gagliardetto/solana-go"

// ProgramID is the dloom program that owns every pool, bin and position record.
var ProgramID = solana.MustPublicKeyFromBase58("8VryDeNca4LCF7ivjQ5mNwMik6ugTtmwfTrg6Qfta23X")

// Record seeds
const (
	AmmPoolSeed          = "amm_pool"
	LpMintSeed           = "lp_mint"
	VaultSeed            = "vault"
	ProtocolFeeVaultSeed = "protocol_fee_vault"
	AmmPositionSeed      = "amm_position"
	DlmmPoolSeed         = "dlmm_pool"
	BinSeed              = "bin"
	PositionSeed         = "position"
	TransactionBinsSeed  = "transaction_bins"
	ProtocolConfigSeed   = "protocol_config"
	DlmmParametersSeed   = "dlmm_parameters"
)
