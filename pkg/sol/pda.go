package sol

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

func derive(programID solana.PublicKey, seeds ...[]byte) (solana.PublicKey, uint8) {
	pda, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0
	}
	return pda, bump
}

// DeriveAmmPoolPDA derives the AMM pool record for an ordered mint pair.
func DeriveAmmPoolPDA(programID, mintA, mintB solana.PublicKey) (solana.PublicKey, uint8) {
	return derive(programID, []byte(AmmPoolSeed), mintA.Bytes(), mintB.Bytes())
}

// DeriveLpMintPDA derives the liquidity token mint of an AMM pool.
func DeriveLpMintPDA(programID, pool solana.PublicKey) (solana.PublicKey, uint8) {
	return derive(programID, []byte(LpMintSeed), pool.Bytes())
}

// DeriveVaultPDA derives the reserve vault holding mint for pool.
func DeriveVaultPDA(programID, pool, mint solana.PublicKey) (solana.PublicKey, uint8) {
	return derive(programID, []byte(VaultSeed), pool.Bytes(), mint.Bytes())
}

// DeriveProtocolFeeVaultPDA derives the protocol fee vault holding mint for pool.
func DeriveProtocolFeeVaultPDA(programID, pool, mint solana.PublicKey) (solana.PublicKey, uint8) {
	return derive(programID, []byte(ProtocolFeeVaultSeed), pool.Bytes(), mint.Bytes())
}

// DeriveAmmPositionPDA derives the AMM position of owner in pool.
func DeriveAmmPositionPDA(programID, owner, pool solana.PublicKey) (solana.PublicKey, uint8) {
	return derive(programID, []byte(AmmPositionSeed), owner.Bytes(), pool.Bytes())
}

// DeriveDlmmPoolPDA derives the DLMM pool for an ordered mint pair and bin step.
func DeriveDlmmPoolPDA(programID, mintA, mintB solana.PublicKey, binStep uint16) (solana.PublicKey, uint8) {
	step := make([]byte, 2)
	binary.LittleEndian.PutUint16(step, binStep)
	return derive(programID, []byte(DlmmPoolSeed), mintA.Bytes(), mintB.Bytes(), step)
}

// DeriveBinPDA derives the record of bin id in pool.
func DeriveBinPDA(programID, pool solana.PublicKey, id int32) (solana.PublicKey, uint8) {
	idBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(idBytes, uint32(id))
	return derive(programID, []byte(BinSeed), pool.Bytes(), idBytes)
}

// DerivePositionPDA derives a DLMM position from its ownership certificate mint.
func DerivePositionPDA(programID, positionMint solana.PublicKey) (solana.PublicKey, uint8) {
	return derive(programID, []byte(PositionSeed), positionMint.Bytes())
}

// DeriveTransactionBinsPDA derives the bin-set commitment record of owner.
func DeriveTransactionBinsPDA(programID, owner solana.PublicKey) (solana.PublicKey, uint8) {
	return derive(programID, []byte(TransactionBinsSeed), owner.Bytes())
}

// DeriveProtocolConfigPDA derives the protocol configuration singleton.
func DeriveProtocolConfigPDA(programID solana.PublicKey) (solana.PublicKey, uint8) {
	return derive(programID, []byte(ProtocolConfigSeed))
}

// DeriveDlmmParametersPDA derives the parameter allow-list singleton.
func DeriveDlmmParametersPDA(programID solana.PublicKey) (solana.PublicKey, uint8) {
	return derive(programID, []byte(DlmmParametersSeed))
}
