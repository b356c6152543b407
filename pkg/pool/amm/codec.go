package amm

import (
	"github.com/Solana-ZH/dloom/pkg/codec"
	"github.com/Solana-ZH/dloom/pkg/types"
)

const (
	poolAccount     = "AmmPool"
	positionAccount = "AmmPosition"
)

// Encode returns the persisted layout of the pool.
func (p *Pool) Encode() ([]byte, error) {
	w := codec.NewWriter(poolAccount)
	w.Put(p.Bump)
	w.Put(p.Authority)
	w.Put(p.TokenAMint)
	w.Put(p.TokenBMint)
	w.Put(p.TokenAVault)
	w.Put(p.TokenBVault)
	w.Put(p.LpMint)
	w.Put(p.FeeRate)
	w.Put(p.ProtocolFeeShare)
	w.Put(p.ReferrerFeeShare)
	w.Put(p.ProtocolFeeVaultA)
	w.Put(p.ProtocolFeeVaultB)
	w.Put(p.ReservesA)
	w.Put(p.ReservesB)
	w.PutU128(p.FeeGrowth.A)
	w.PutU128(p.FeeGrowth.B)
	w.PutU128(p.Oracle.PriceACumulative)
	w.PutU128(p.Oracle.PriceBCumulative)
	w.Put(p.Oracle.LastUpdateTimestamp)
	w.Put(p.LastFeeUpdateTimestamp)
	w.PutU128(p.PriceACumulativeLastFeeUpdate)
	return w.Bytes()
}

// Decode parses a persisted pool record.
func (p *Pool) Decode(data []byte) error {
	r, err := codec.NewReader(poolAccount, data)
	if err != nil {
		return err
	}
	r.Get(&p.Bump)
	r.Get(&p.Authority)
	r.Get(&p.TokenAMint)
	r.Get(&p.TokenBMint)
	r.Get(&p.TokenAVault)
	r.Get(&p.TokenBVault)
	r.Get(&p.LpMint)
	r.Get(&p.FeeRate)
	r.Get(&p.ProtocolFeeShare)
	r.Get(&p.ReferrerFeeShare)
	r.Get(&p.ProtocolFeeVaultA)
	r.Get(&p.ProtocolFeeVaultB)
	r.Get(&p.ReservesA)
	r.Get(&p.ReservesB)
	p.FeeGrowth.A = r.GetU128()
	p.FeeGrowth.B = r.GetU128()
	p.Oracle.PriceACumulative = r.GetU128()
	p.Oracle.PriceBCumulative = r.GetU128()
	r.Get(&p.Oracle.LastUpdateTimestamp)
	r.Get(&p.LastFeeUpdateTimestamp)
	p.PriceACumulativeLastFeeUpdate = r.GetU128()
	return r.Err()
}

// Encode returns the persisted layout of the position.
func (pos *Position) Encode() ([]byte, error) {
	w := codec.NewWriter(positionAccount)
	w.Put(pos.Pool)
	w.Put(pos.Owner)
	w.Put(pos.LpTokenAmount)
	w.PutU128(pos.Snapshot.A)
	w.PutU128(pos.Snapshot.B)
	w.Put(uint8(pos.FeePreference))
	return w.Bytes()
}

// Decode parses a persisted position record.
func (pos *Position) Decode(data []byte) error {
	r, err := codec.NewReader(positionAccount, data)
	if err != nil {
		return err
	}
	var preference uint8
	r.Get(&pos.Pool)
	r.Get(&pos.Owner)
	r.Get(&pos.LpTokenAmount)
	pos.Snapshot.A = r.GetU128()
	pos.Snapshot.B = r.GetU128()
	r.Get(&preference)
	if err := r.Err(); err != nil {
		return err
	}
	pos.FeePreference = types.FeePreference(preference)
	if !pos.FeePreference.Valid() {
		return types.ErrInvalidFeePreference.Wrapf("decoded preference %d", preference)
	}
	return nil
}
