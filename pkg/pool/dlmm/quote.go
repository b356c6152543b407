package dlmm

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"

	"github.com/Solana-ZH/dloom/pkg"
	"github.com/Solana-ZH/dloom/pkg/sol"
)

func (p *Pool) ProtocolName() pkg.ProtocolName {
	return pkg.ProtocolNameDloomDlmm
}

func (p *Pool) ProtocolType() pkg.ProtocolType {
	return pkg.ProtocolTypeDloomDlmm
}

func (p *Pool) GetProgramID() solana.PublicKey {
	return sol.ProgramID
}

func (p *Pool) GetID() string {
	return p.PoolID.String()
}

func (p *Pool) GetTokens() (string, string) {
	return p.TokenAMint.String(), p.TokenBMint.String()
}

// Quote walks the loaded bins for inputAmount of inputMint. Only bins present
// in p.Bins carry liquidity.
func (p *Pool) Quote(ctx context.Context, inputMint string, inputAmount math.Int) (math.Int, error) {
	mint, err := solana.PublicKeyFromBase58(inputMint)
	if err != nil {
		return math.ZeroInt(), fmt.Errorf("invalid input mint %q: %w", inputMint, err)
	}
	dir, err := p.Direction(mint)
	if err != nil {
		return math.ZeroInt(), err
	}
	if !inputAmount.IsUint64() {
		return math.ZeroInt(), fmt.Errorf("input amount %s does not fit in u64", inputAmount)
	}
	res, err := p.QuoteSwap(dir, inputAmount.Uint64())
	if err != nil {
		return math.ZeroInt(), err
	}
	return math.NewIntFromUint64(res.AmountOut), nil
}
