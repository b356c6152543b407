// Package events describes the facts engine operations produce for
// downstream observers. The engine never reads them back.
package events

import (
	"github.com/gagliardetto/solana-go"

	"github.com/Solana-ZH/dloom/pkg/types"
)

// Kind names an event type.
type Kind string

const (
	KindPoolCreated       Kind = "pool_created"
	KindLiquidityChanged  Kind = "liquidity_changed"
	KindLiquidityMigrated Kind = "liquidity_migrated"
	KindSwapExecuted      Kind = "swap_executed"
	KindFeesClaimed       Kind = "fees_claimed"
	KindFeesUpdated       Kind = "fees_updated"
	KindPositionOpened    Kind = "position_opened"
	KindPositionClosed    Kind = "position_closed"
	KindParametersChanged Kind = "parameters_changed"
)

// Event is implemented by every fact type below.
type Event interface {
	Kind() Kind
}

type PoolCreated struct {
	Pool     solana.PublicKey `json:"pool"`
	Design   string           `json:"design"`
	MintA    solana.PublicKey `json:"mint_a"`
	MintB    solana.PublicKey `json:"mint_b"`
	FeeRate  uint16           `json:"fee_rate"`
	BinStep  uint16           `json:"bin_step,omitempty"`
	PoolType types.PoolType   `json:"pool_type"`
}

func (PoolCreated) Kind() Kind { return KindPoolCreated }

// LiquidityChanged reports a deposit (positive delta) or withdrawal.
type LiquidityChanged struct {
	Pool    solana.PublicKey `json:"pool"`
	Owner   solana.PublicKey `json:"owner"`
	Deposit bool             `json:"deposit"`
	Units   string           `json:"units"`
	AmountA uint64           `json:"amount_a"`
	AmountB uint64           `json:"amount_b"`
	FeesA   uint64           `json:"fees_a"`
	FeesB   uint64           `json:"fees_b"`
}

func (LiquidityChanged) Kind() Kind { return KindLiquidityChanged }

type LiquidityMigrated struct {
	Pool        solana.PublicKey `json:"pool"`
	Owner       solana.PublicKey `json:"owner"`
	OldPosition solana.PublicKey `json:"old_position"`
	NewPosition solana.PublicKey `json:"new_position"`
	Liquidity   string           `json:"liquidity"`
	SurplusA    uint64           `json:"surplus_a"`
	SurplusB    uint64           `json:"surplus_b"`
}

func (LiquidityMigrated) Kind() Kind { return KindLiquidityMigrated }

type SwapExecuted struct {
	Pool        solana.PublicKey    `json:"pool"`
	Trader      solana.PublicKey    `json:"trader"`
	Direction   types.SwapDirection `json:"direction"`
	AmountIn    uint64              `json:"amount_in"`
	AmountOut   uint64              `json:"amount_out"`
	ProtocolFee uint64              `json:"protocol_fee"`
	LpFee       uint64              `json:"lp_fee"`
	ReferralFee uint64              `json:"referral_fee"`
	Referrer    *solana.PublicKey   `json:"referrer,omitempty"`
	FinalBinID  *int32              `json:"final_bin_id,omitempty"`
}

func (SwapExecuted) Kind() Kind { return KindSwapExecuted }

type FeesClaimed struct {
	Pool       solana.PublicKey `json:"pool"`
	Owner      solana.PublicKey `json:"owner"`
	AmountA    uint64           `json:"amount_a"`
	AmountB    uint64           `json:"amount_b"`
	Reinvested bool             `json:"reinvested"`
	LpMinted   uint64           `json:"lp_minted"`
}

func (FeesClaimed) Kind() Kind { return KindFeesClaimed }

type FeesUpdated struct {
	Pool       solana.PublicKey `json:"pool"`
	NewFeeRate uint16           `json:"new_fee_rate"`
	Manual     bool             `json:"manual"`
}

func (FeesUpdated) Kind() Kind { return KindFeesUpdated }

type PositionOpened struct {
	Pool       solana.PublicKey `json:"pool"`
	Owner      solana.PublicKey `json:"owner"`
	Position   solana.PublicKey `json:"position"`
	LowerBinID int32            `json:"lower_bin_id"`
	UpperBinID int32            `json:"upper_bin_id"`
}

func (PositionOpened) Kind() Kind { return KindPositionOpened }

type PositionClosed struct {
	Position solana.PublicKey `json:"position"`
	Owner    solana.PublicKey `json:"owner"`
}

func (PositionClosed) Kind() Kind { return KindPositionClosed }

type ParametersChanged struct {
	List    types.ParameterList   `json:"list"`
	Action  types.ParameterAction `json:"action"`
	BinStep uint16                `json:"bin_step"`
	FeeRate uint16                `json:"fee_rate"`
}

func (ParametersChanged) Kind() Kind { return KindParametersChanged }
