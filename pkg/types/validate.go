package types

import (
	"bytes"

	"github.com/gagliardetto/solana-go"
)

// ValidateFeeRates checks each basis-point field and that the protocol and
// referrer shares together fit in one whole.
func ValidateFeeRates(feeRate, protocolFeeShare, referrerFeeShare uint16) error {
	if feeRate > BasisPointMax || protocolFeeShare > BasisPointMax || referrerFeeShare > BasisPointMax {
		return ErrInvalidFeeRates.Wrapf("fee %d protocol %d referrer %d", feeRate, protocolFeeShare, referrerFeeShare)
	}
	if uint32(protocolFeeShare)+uint32(referrerFeeShare) > BasisPointMax {
		return ErrFeeShareExceedsTotal.Wrapf("protocol %d + referrer %d", protocolFeeShare, referrerFeeShare)
	}
	return nil
}

// CheckMintOrder requires mintA to sort strictly before mintB.
func CheckMintOrder(mintA, mintB solana.PublicKey) error {
	if bytes.Compare(mintA.Bytes(), mintB.Bytes()) >= 0 {
		return ErrInvalidMintOrder.Wrapf("%s >= %s", mintA, mintB)
	}
	return nil
}
