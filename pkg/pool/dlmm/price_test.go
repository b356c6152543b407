package dlmm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
	"pgregory.net/rapid"

	"github.com/Solana-ZH/dloom/pkg/types"
)

func TestGetPriceAtBin(t *testing.T) {
	tests := []struct {
		id   int32
		step uint16
		want uint64
	}{
		{0, 20, 1_000_000_000_000},
		{1, 20, 1_002_000_000_000},
		{2, 20, 1_004_000_000_000},
		{-1, 20, 998_003_992_015},
		{-2, 20, 996_015_936_254},
		{1, 1, 1_000_100_000_000},
		{-1, 1, 999_900_009_999},
		{-3, 1, 999_700_069_985},
	}
	for _, tt := range tests {
		price, err := GetPriceAtBin(tt.id, tt.step)
		require.NoError(t, err)
		assert.Equal(t, uint128.From64(tt.want), price, "bin %d step %d", tt.id, tt.step)
	}

	_, err := GetPriceAtBin(5, 0)
	assert.ErrorIs(t, err, types.ErrInvalidBinStep)
}

func TestPriceDecimal(t *testing.T) {
	d, err := PriceDecimal(1, 20)
	require.NoError(t, err)
	assert.Equal(t, "1.002", d.String())
}

func TestPriceIncreasesWithBinID(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		step := rapid.SampledFrom([]uint16{10, 20, 25, 50, 100}).Draw(t, "step")
		id := rapid.Int32Range(-300, 299).Draw(t, "id")

		lo, err := GetPriceAtBin(id, step)
		require.NoError(t, err)
		hi, err := GetPriceAtBin(id+1, step)
		require.NoError(t, err)
		assert.Equal(t, 1, hi.Cmp(lo))
	})
}
