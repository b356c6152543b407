package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
	"pgregory.net/rapid"

	"github.com/Solana-ZH/dloom/pkg/types"
)

func TestFirstUpdateOnlyRecordsTime(t *testing.T) {
	o, err := Observation{}.Update(1_000, 2_000, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(100), o.LastUpdateTimestamp)
	assert.True(t, o.PriceACumulative.IsZero())
	assert.True(t, o.PriceBCumulative.IsZero())
}

func TestUpdateIntegratesPrice(t *testing.T) {
	o := Observation{LastUpdateTimestamp: 100}
	o, err := o.Update(1_000_000, 2_000_000, 110)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(2*types.OracleScale*10), o.PriceACumulative)
	assert.Equal(t, uint128.From64(types.OracleScale/2*10), o.PriceBCumulative)
	assert.Equal(t, int64(110), o.LastUpdateTimestamp)
}

func TestUpdateEmptyReservesAdvancesClock(t *testing.T) {
	o := Observation{LastUpdateTimestamp: 100, PriceACumulative: uint128.From64(5)}
	o, err := o.Update(0, 2_000, 150)
	require.NoError(t, err)
	assert.Equal(t, uint128.From64(5), o.PriceACumulative)
	assert.Equal(t, int64(150), o.LastUpdateTimestamp)
}

func TestSameTimestampIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ra := rapid.Uint64Range(1, 1<<40).Draw(t, "reserveA")
		rb := rapid.Uint64Range(1, 1<<40).Draw(t, "reserveB")
		now := rapid.Int64Range(1, 1<<32).Draw(t, "now")
		o := Observation{
			PriceACumulative:    uint128.From64(rapid.Uint64().Draw(t, "cumA")),
			PriceBCumulative:    uint128.From64(rapid.Uint64().Draw(t, "cumB")),
			LastUpdateTimestamp: now,
		}
		once, err := o.Update(ra, rb, now)
		if err != nil {
			t.Fatal(err)
		}
		twice, err := once.Update(ra, rb, now)
		if err != nil {
			t.Fatal(err)
		}
		if once != o || twice != o {
			t.Fatalf("same-timestamp update changed state: %+v -> %+v -> %+v", o, once, twice)
		}
	})
}

func TestAverage(t *testing.T) {
	start := Observation{LastUpdateTimestamp: 100}
	mid, err := start.Update(1_000, 4_000, 110)
	require.NoError(t, err)
	end, err := mid.Update(1_000, 1_000, 130)
	require.NoError(t, err)

	avgA, avgB, err := Average(start, end)
	require.NoError(t, err)
	// 10s at 4.0 and 20s at 1.0
	assert.Equal(t, uint128.From64(2*types.OracleScale), avgA)
	assert.Equal(t, "2", ToDecimal(avgA).String())
	assert.Equal(t, uint128.From64(types.OracleScale*75/100), avgB)

	_, _, err = Average(end, end)
	assert.ErrorIs(t, err, types.ErrUpdateNotNeeded)
}
