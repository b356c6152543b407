package pkg

import (
	"context"

	"cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
)

// ProtocolName represents the string name of a pool design
type ProtocolName string

const (
	ProtocolNameDloomAmm  ProtocolName = "dloom_amm"
	ProtocolNameDloomDlmm ProtocolName = "dloom_dlmm"
)

// ProtocolType represents the numeric type of a pool design (matches program enum)
type ProtocolType uint8

const (
	ProtocolTypeDloomAmm ProtocolType = iota
	ProtocolTypeDloomDlmm
)

// Pool is a loaded pool that can quote trades against its own state.
type Pool interface {
	ProtocolName() ProtocolName
	ProtocolType() ProtocolType
	GetProgramID() solana.PublicKey
	GetID() string
	GetTokens() (baseMint, quoteMint string)
	Quote(ctx context.Context, inputMint string, inputAmount math.Int) (math.Int, error)
}

type Protocol interface {
	FetchPoolsByPair(ctx context.Context, baseMint, quoteMint string) ([]Pool, error)
	FetchPoolByID(ctx context.Context, poolID string) (Pool, error)
}
