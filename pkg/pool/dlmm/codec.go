package dlmm

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Solana-ZH/dloom/pkg/codec"
	"github.com/Solana-ZH/dloom/pkg/types"
)

const (
	poolAccount       = "DlmmPool"
	binAccount        = "Bin"
	positionAccount   = "Position"
	parametersAccount = "DlmmParameters"
	configAccount     = "ProtocolConfig"
)

// ProtocolConfig holds the master authority of the program.
type ProtocolConfig struct {
	Authority solana.PublicKey
}

func (p *Pool) Encode() ([]byte, error) {
	w := codec.NewWriter(poolAccount)
	w.Put(p.Bump)
	w.Put(p.Authority)
	w.Put(uint8(p.PoolType))
	w.Put(p.TokenAMint)
	w.Put(p.TokenBMint)
	w.Put(p.TokenAVault)
	w.Put(p.TokenBVault)
	w.Put(p.ActiveBinID)
	w.Put(p.BinStep)
	w.Put(p.FeeRate)
	w.Put(p.ProtocolFeeShare)
	w.Put(p.ReferrerFeeShare)
	w.Put(p.ProtocolFeeVaultA)
	w.Put(p.ProtocolFeeVaultB)
	w.Put(p.VolatilityAccumulator)
	w.Put(p.LastFeeUpdateTimestamp)
	w.Put(p.ReservesA)
	w.Put(p.ReservesB)
	return w.Bytes()
}

func (p *Pool) Decode(data []byte) error {
	r, err := codec.NewReader(poolAccount, data)
	if err != nil {
		return err
	}
	var poolType uint8
	r.Get(&p.Bump)
	r.Get(&p.Authority)
	r.Get(&poolType)
	r.Get(&p.TokenAMint)
	r.Get(&p.TokenBMint)
	r.Get(&p.TokenAVault)
	r.Get(&p.TokenBVault)
	r.Get(&p.ActiveBinID)
	r.Get(&p.BinStep)
	r.Get(&p.FeeRate)
	r.Get(&p.ProtocolFeeShare)
	r.Get(&p.ReferrerFeeShare)
	r.Get(&p.ProtocolFeeVaultA)
	r.Get(&p.ProtocolFeeVaultB)
	r.Get(&p.VolatilityAccumulator)
	r.Get(&p.LastFeeUpdateTimestamp)
	r.Get(&p.ReservesA)
	r.Get(&p.ReservesB)
	if err := r.Err(); err != nil {
		return err
	}
	p.PoolType = types.PoolType(poolType)
	if p.PoolType != types.PoolTypeOfficial && p.PoolType != types.PoolTypeCommunity {
		return types.ErrInvalidPool.Wrapf("decoded pool type %d", poolType)
	}
	return nil
}

func (b *Bin) Encode() ([]byte, error) {
	w := codec.NewWriter(binAccount)
	w.Put(b.Pool)
	w.Put(b.BinID)
	w.PutU128(b.Liquidity)
	w.PutU128(b.FeeGrowth.A)
	w.PutU128(b.FeeGrowth.B)
	return w.Bytes()
}

func (b *Bin) Decode(data []byte) error {
	r, err := codec.NewReader(binAccount, data)
	if err != nil {
		return err
	}
	r.Get(&b.Pool)
	r.Get(&b.BinID)
	b.Liquidity = r.GetU128()
	b.FeeGrowth.A = r.GetU128()
	b.FeeGrowth.B = r.GetU128()
	return r.Err()
}

func (pos *Position) Encode() ([]byte, error) {
	w := codec.NewWriter(positionAccount)
	w.Put(pos.Pool)
	w.Put(pos.Owner)
	w.Put(pos.LowerBinID)
	w.Put(pos.UpperBinID)
	w.PutU128(pos.Liquidity)
	w.Put(pos.PositionMint)
	w.PutU128(pos.Snapshot.A)
	w.PutU128(pos.Snapshot.B)
	return w.Bytes()
}

func (pos *Position) Decode(data []byte) error {
	r, err := codec.NewReader(positionAccount, data)
	if err != nil {
		return err
	}
	r.Get(&pos.Pool)
	r.Get(&pos.Owner)
	r.Get(&pos.LowerBinID)
	r.Get(&pos.UpperBinID)
	pos.Liquidity = r.GetU128()
	r.Get(&pos.PositionMint)
	pos.Snapshot.A = r.GetU128()
	pos.Snapshot.B = r.GetU128()
	return r.Err()
}

// Encode writes both lists as length-prefixed vectors.
func (ps *Parameters) Encode() ([]byte, error) {
	w := codec.NewWriter(parametersAccount)
	w.Put(ps.Authority)
	w.Put(ps.Official)
	w.Put(ps.Community)
	return w.Bytes()
}

func (ps *Parameters) Decode(data []byte) error {
	r, err := codec.NewReader(parametersAccount, data)
	if err != nil {
		return err
	}
	r.Get(&ps.Authority)
	r.Get(&ps.Official)
	r.Get(&ps.Community)
	return r.Err()
}

func (c *ProtocolConfig) Encode() ([]byte, error) {
	w := codec.NewWriter(configAccount)
	w.Put(c.Authority)
	return w.Bytes()
}

func (c *ProtocolConfig) Decode(data []byte) error {
	r, err := codec.NewReader(configAccount, data)
	if err != nil {
		return err
	}
	r.Get(&c.Authority)
	return r.Err()
}
