package protocol

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"

	"github.com/Solana-ZH/dloom/pkg"
	"github.com/Solana-ZH/dloom/pkg/codec"
	"github.com/Solana-ZH/dloom/pkg/pool/amm"
	"github.com/Solana-ZH/dloom/pkg/pool/dlmm"
	"github.com/Solana-ZH/dloom/pkg/sol"
	"github.com/Solana-ZH/dloom/pkg/types"
)

// DefaultBinWindow is how many bins on each side of the active bin are loaded.
const DefaultBinWindow = 35

// AccountReader is the subset of sol.Client the loader needs.
type AccountReader interface {
	GetAccountData(ctx context.Context, address solana.PublicKey) ([]byte, error)
	GetMultipleAccountData(ctx context.Context, addresses ...solana.PublicKey) ([][]byte, error)
}

var _ AccountReader = (*sol.Client)(nil)

// DloomProtocol loads AMM and DLMM pool records of one program deployment.
//
// Pools are located by address derivation rather than program scans: the AMM
// pool of a pair is unique and DLMM pools are keyed by bin step, so the
// loader probes every bin step it is configured with.
type DloomProtocol struct {
	Reader    AccountReader
	ProgramID solana.PublicKey
	BinSteps  []uint16
	BinWindow int32
	Log       zerolog.Logger
}

// NewDloom creates a loader that probes the given DLMM bin steps.
func NewDloom(reader AccountReader, programID solana.PublicKey, binSteps []uint16, log zerolog.Logger) *DloomProtocol {
	if programID.IsZero() {
		programID = sol.ProgramID
	}
	return &DloomProtocol{
		Reader:    reader,
		ProgramID: programID,
		BinSteps:  binSteps,
		BinWindow: DefaultBinWindow,
		Log:       log,
	}
}

// FetchPoolsByPair returns every existing pool for the pair in either order.
func (p *DloomProtocol) FetchPoolsByPair(ctx context.Context, baseMint string, quoteMint string) ([]pkg.Pool, error) {
	mintA, err := solana.PublicKeyFromBase58(baseMint)
	if err != nil {
		return nil, fmt.Errorf("invalid base mint address: %w", err)
	}
	mintB, err := solana.PublicKeyFromBase58(quoteMint)
	if err != nil {
		return nil, fmt.Errorf("invalid quote mint address: %w", err)
	}
	if types.CheckMintOrder(mintA, mintB) != nil {
		mintA, mintB = mintB, mintA
	}

	ammID, _ := sol.DeriveAmmPoolPDA(p.ProgramID, mintA, mintB)
	addresses := []solana.PublicKey{ammID}
	for _, step := range p.BinSteps {
		id, _ := sol.DeriveDlmmPoolPDA(p.ProgramID, mintA, mintB, step)
		addresses = append(addresses, id)
	}
	data, err := p.Reader.GetMultipleAccountData(ctx, addresses...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pools for %s/%s: %w", mintA, mintB, err)
	}

	res := make([]pkg.Pool, 0, len(addresses))
	for i, raw := range data {
		if i >= len(addresses) || raw == nil {
			continue
		}
		pool, err := p.decodePool(ctx, addresses[i], raw)
		if err != nil {
			p.Log.Warn().Err(err).Str("pool", addresses[i].String()).Msg("skipping undecodable pool")
			continue
		}
		res = append(res, pool)
	}
	return res, nil
}

// FetchPoolByID loads one pool of either design.
func (p *DloomProtocol) FetchPoolByID(ctx context.Context, poolID string) (pkg.Pool, error) {
	id, err := solana.PublicKeyFromBase58(poolID)
	if err != nil {
		return nil, fmt.Errorf("invalid pool id %q: %w", poolID, err)
	}
	data, err := p.Reader.GetAccountData(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pool %s: %w", id, err)
	}
	return p.decodePool(ctx, id, data)
}

func (p *DloomProtocol) decodePool(ctx context.Context, id solana.PublicKey, data []byte) (pkg.Pool, error) {
	switch {
	case hasDiscriminator(data, "AmmPool"):
		pool := &amm.Pool{}
		if err := pool.Decode(data); err != nil {
			return nil, fmt.Errorf("failed to decode amm pool %s: %w", id, err)
		}
		pool.PoolID = id
		return pool, nil
	case hasDiscriminator(data, "DlmmPool"):
		pool := &dlmm.Pool{}
		if err := pool.Decode(data); err != nil {
			return nil, fmt.Errorf("failed to decode dlmm pool %s: %w", id, err)
		}
		pool.PoolID = id
		if err := p.loadBins(ctx, pool); err != nil {
			return nil, err
		}
		return pool, nil
	default:
		return nil, fmt.Errorf("account %s is not a pool record", id)
	}
}

// loadBins reads the bins within BinWindow of the active bin. Bins that were
// never created are left out of the arena.
func (p *DloomProtocol) loadBins(ctx context.Context, pool *dlmm.Pool) error {
	lower := int64(pool.ActiveBinID) - int64(p.BinWindow)
	upper := int64(pool.ActiveBinID) + int64(p.BinWindow)
	ids := make([]int32, 0, upper-lower+1)
	addresses := make([]solana.PublicKey, 0, upper-lower+1)
	for id := lower; id <= upper; id++ {
		addr, _ := sol.DeriveBinPDA(p.ProgramID, pool.PoolID, int32(id))
		ids = append(ids, int32(id))
		addresses = append(addresses, addr)
	}
	data, err := p.Reader.GetMultipleAccountData(ctx, addresses...)
	if err != nil {
		return fmt.Errorf("failed to fetch bins of %s: %w", pool.PoolID, err)
	}
	pool.Bins = dlmm.Bins{}
	for i, raw := range data {
		if i >= len(ids) || raw == nil {
			continue
		}
		b := &dlmm.Bin{}
		if err := b.Decode(raw); err != nil {
			p.Log.Warn().Err(err).Int32("bin", ids[i]).Msg("skipping undecodable bin")
			continue
		}
		if b.BinID != ids[i] || !b.Pool.Equals(pool.PoolID) {
			p.Log.Warn().Int32("bin", ids[i]).Int32("record_bin", b.BinID).Msg("skipping mismatched bin record")
			continue
		}
		pool.Bins.Put(b)
	}
	p.Log.Debug().Str("pool", pool.PoolID.String()).Int("bins", len(pool.Bins)).Msg("loaded bins")
	return nil
}

func hasDiscriminator(data []byte, account string) bool {
	d := codec.Discriminator(account)
	return len(data) >= 8 && bytes.Equal(data[:8], d[:])
}
