package sol

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
)

var wsolMint = solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")

func TestDeriveIsDeterministic(t *testing.T) {
	mintA := solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	mintB := wsolMint

	p1, b1 := DeriveAmmPoolPDA(ProgramID, mintA, mintB)
	p2, b2 := DeriveAmmPoolPDA(ProgramID, mintA, mintB)
	assert.Equal(t, p1, p2)
	assert.Equal(t, b1, b2)
	assert.False(t, p1.IsZero())

	swapped, _ := DeriveAmmPoolPDA(ProgramID, mintB, mintA)
	assert.NotEqual(t, p1, swapped)
}

func TestDeriveBinDistinguishesIDs(t *testing.T) {
	pool, _ := DeriveDlmmPoolPDA(ProgramID, solana.SystemProgramID, wsolMint, 20)
	seen := map[solana.PublicKey]int32{}
	for _, id := range []int32{-40, -20, 0, 20, 40} {
		pda, _ := DeriveBinPDA(ProgramID, pool, id)
		_, dup := seen[pda]
		assert.False(t, dup, "bin %d collides", id)
		seen[pda] = id
	}

	step20, _ := DeriveDlmmPoolPDA(ProgramID, solana.SystemProgramID, wsolMint, 20)
	step10, _ := DeriveDlmmPoolPDA(ProgramID, solana.SystemProgramID, wsolMint, 10)
	assert.NotEqual(t, step20, step10)
}

func TestSingletons(t *testing.T) {
	cfg, _ := DeriveProtocolConfigPDA(ProgramID)
	params, _ := DeriveDlmmParametersPDA(ProgramID)
	assert.NotEqual(t, cfg, params)
}
