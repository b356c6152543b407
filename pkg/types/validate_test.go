package types

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFeeRates(t *testing.T) {
	require.NoError(t, ValidateFeeRates(30, 5000, 5000))
	require.NoError(t, ValidateFeeRates(10000, 0, 10000))

	err := ValidateFeeRates(10001, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidFeeRates)

	err = ValidateFeeRates(30, 6000, 4001)
	assert.ErrorIs(t, err, ErrFeeShareExceedsTotal)
	assert.Equal(t, ClassValidation, Classify(err))
}

func TestCheckMintOrder(t *testing.T) {
	low := solana.PublicKeyFromBytes(append([]byte{1}, make([]byte, 31)...))
	high := solana.PublicKeyFromBytes(append([]byte{2}, make([]byte, 31)...))

	require.NoError(t, CheckMintOrder(low, high))
	assert.ErrorIs(t, CheckMintOrder(high, low), ErrInvalidMintOrder)
	assert.ErrorIs(t, CheckMintOrder(low, low), ErrInvalidMintOrder)
}
