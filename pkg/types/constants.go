package types

import "lukechampine.com/uint128"

// Basis point constants
const (
	BasisPointMax = 10000
)

// Fixed-point scales
const (
	// PrecisionRaw scales fee-growth accumulators and bin prices.
	PrecisionRaw = 1_000_000_000_000
	// OracleScale scales the spot prices integrated by the TWAP oracle.
	OracleScale = 1_000_000_000
)

// DLMM limits
const (
	// MaxBinsPerPosition bounds (upper-lower)/bin_step for a position.
	MaxBinsPerPosition = 69
	// MaxCommittedBins is the capacity of a bin-set commitment.
	MaxCommittedBins = 70
)

// Dynamic fee controller
const (
	FeeUpdateCooldown   = 3600
	BaseFeeRate         = 10
	MaxVariableFeeRate  = 90
	VolatilityScaleBase = 100
)

// Precision is PrecisionRaw as a 128-bit value.
var Precision = uint128.From64(PrecisionRaw)
