package types

import "fmt"

// FeePreference selects how an AMM position settles accrued fees.
type FeePreference uint8

const (
	FeePreferenceClaim FeePreference = iota
	FeePreferenceAutoCompound
)

func (p FeePreference) String() string {
	switch p {
	case FeePreferenceClaim:
		return "claim"
	case FeePreferenceAutoCompound:
		return "auto_compound"
	default:
		return fmt.Sprintf("fee_preference(%d)", uint8(p))
	}
}

// Valid reports whether p is a known preference.
func (p FeePreference) Valid() bool {
	return p == FeePreferenceClaim || p == FeePreferenceAutoCompound
}

// PoolType distinguishes protocol-created pools from community-created ones.
type PoolType uint8

const (
	PoolTypeOfficial PoolType = iota
	PoolTypeCommunity
)

func (t PoolType) String() string {
	switch t {
	case PoolTypeOfficial:
		return "official"
	case PoolTypeCommunity:
		return "community"
	default:
		return fmt.Sprintf("pool_type(%d)", uint8(t))
	}
}

// ParameterList names one of the two DLMM parameter allow-lists.
type ParameterList uint8

const (
	ParameterListOfficial ParameterList = iota
	ParameterListCommunity
)

func (l ParameterList) String() string {
	if l == ParameterListCommunity {
		return "community"
	}
	return "official"
}

// ParameterAction edits a parameter allow-list.
type ParameterAction uint8

const (
	ParameterActionAdd ParameterAction = iota
	ParameterActionRemove
)

func (a ParameterAction) String() string {
	if a == ParameterActionRemove {
		return "remove"
	}
	return "add"
}

// SwapDirection is the side of the pair being sold.
type SwapDirection uint8

const (
	// SwapAToB sells token A for token B.
	SwapAToB SwapDirection = iota
	// SwapBToA sells token B for token A.
	SwapBToA
)

func (d SwapDirection) String() string {
	if d == SwapBToA {
		return "b_to_a"
	}
	return "a_to_b"
}
