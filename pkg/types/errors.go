package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Codespace is the error codespace of the dloom engine.
const Codespace = "dloom"

// Engine sentinel errors. Codes follow the on-chain program numbering.
var (
	ErrInvalidFeeRates              = errorsmod.Register(Codespace, 6000, "fee rates must not exceed 10000 basis points")
	ErrInvalidParameters            = errorsmod.Register(Codespace, 6001, "bin step and fee rate combination is not allowed")
	ErrInvalidMintOrder             = errorsmod.Register(Codespace, 6002, "mint A must sort before mint B")
	ErrInvalidMint                  = errorsmod.Register(Codespace, 6003, "mint does not belong to the pool")
	ErrInvalidBinRange              = errorsmod.Register(Codespace, 6004, "lower bin id must be below upper bin id")
	ErrZeroLiquidity                = errorsmod.Register(Codespace, 6005, "liquidity amount must be greater than zero")
	ErrSlippageExceeded             = errorsmod.Register(Codespace, 6006, "slippage tolerance exceeded")
	ErrUnauthorized                 = errorsmod.Register(Codespace, 6007, "unauthorized")
	ErrInsufficientLiquidity        = errorsmod.Register(Codespace, 6008, "insufficient liquidity")
	ErrPositionNotEmpty             = errorsmod.Register(Codespace, 6009, "position still holds liquidity")
	ErrZeroAmount                   = errorsmod.Register(Codespace, 6010, "amount must be greater than zero")
	ErrInvalidVault                 = errorsmod.Register(Codespace, 6011, "invalid vault")
	ErrInvalidBinID                 = errorsmod.Register(Codespace, 6012, "bin id is not aligned to the bin step")
	ErrRangeTooWide                 = errorsmod.Register(Codespace, 6013, "position range covers too many bins")
	ErrMathOverflow                 = errorsmod.Register(Codespace, 6014, "math overflow")
	ErrInvalidBinStep               = errorsmod.Register(Codespace, 6015, "bin step must be greater than zero")
	ErrInsufficientLiquidityForSwap = errorsmod.Register(Codespace, 6016, "insufficient liquidity for swap")
	ErrInvalidBinCount              = errorsmod.Register(Codespace, 6017, "invalid number of bins")
	ErrInvalidBinAccount            = errorsmod.Register(Codespace, 6018, "bin record does not match the expected id")
	ErrInvalidPool                  = errorsmod.Register(Codespace, 6019, "operation not allowed on this pool")
	ErrBinCacheMismatch             = errorsmod.Register(Codespace, 6020, "supplied bins do not match the committed bin set")
	ErrUpdateNotNeeded              = errorsmod.Register(Codespace, 6021, "fee update cooldown has not elapsed")
	ErrInvalidFeePreference         = errorsmod.Register(Codespace, 6022, "position fee preference does not allow this operation")
	ErrFeeShareExceedsTotal         = errorsmod.Register(Codespace, 6023, "protocol and referrer shares exceed 10000 basis points")
	ErrReferrerIsTrader             = errorsmod.Register(Codespace, 6024, "referrer cannot be the trader")
	ErrCommitmentConsumed           = errorsmod.Register(Codespace, 6025, "bin set commitment already used")
	ErrInsufficientSurplus          = errorsmod.Register(Codespace, 6026, "new range requires more than the old range releases")
)

// ErrorClass groups errors by how a caller should react to them.
type ErrorClass uint8

const (
	ClassUnknown ErrorClass = iota
	ClassValidation
	ClassArithmetic
	ClassSlippage
	ClassCommitment
)

func (c ErrorClass) String() string {
	switch c {
	case ClassValidation:
		return "validation"
	case ClassArithmetic:
		return "arithmetic"
	case ClassSlippage:
		return "slippage"
	case ClassCommitment:
		return "commitment"
	default:
		return "unknown"
	}
}

// Classify maps an engine error to its taxonomy class.
func Classify(err error) ErrorClass {
	switch {
	case err == nil:
		return ClassUnknown
	case errorsmod.IsOf(err, ErrMathOverflow):
		return ClassArithmetic
	case errorsmod.IsOf(err, ErrSlippageExceeded, ErrInsufficientSurplus):
		return ClassSlippage
	case errorsmod.IsOf(err, ErrBinCacheMismatch, ErrInvalidBinAccount, ErrCommitmentConsumed, ErrInvalidBinCount):
		return ClassCommitment
	case errorsmod.IsOf(err,
		ErrInvalidFeeRates, ErrInvalidParameters, ErrInvalidMintOrder, ErrInvalidMint,
		ErrInvalidBinRange, ErrZeroLiquidity, ErrUnauthorized, ErrInsufficientLiquidity,
		ErrPositionNotEmpty, ErrZeroAmount, ErrInvalidVault, ErrInvalidBinID, ErrRangeTooWide,
		ErrInvalidBinStep, ErrInsufficientLiquidityForSwap, ErrInvalidPool, ErrUpdateNotNeeded,
		ErrInvalidFeePreference, ErrFeeShareExceedsTotal, ErrReferrerIsTrader):
		return ClassValidation
	default:
		return ClassUnknown
	}
}
