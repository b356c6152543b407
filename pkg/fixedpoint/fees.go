package fixedpoint

import "github.com/Solana-ZH/dloom/pkg/types"

// FeeSplit takes feeRate of amount and splits it into protocol and LP parts.
func FeeSplit(amount uint64, feeRate, protocolFeeShare uint16) (total, protocol, lp uint64, err error) {
	if total, err = MulDiv64(amount, uint64(feeRate), types.BasisPointMax); err != nil {
		return 0, 0, 0, err
	}
	if protocol, err = MulDiv64(total, uint64(protocolFeeShare), types.BasisPointMax); err != nil {
		return 0, 0, 0, err
	}
	return total, protocol, total - protocol, nil
}

// ReferralFee is the referrer's cut of protocolFee. It is zero without a
// referrer or when either the share or the fee is zero.
func ReferralFee(protocolFee uint64, referrerFeeShare uint16, hasReferrer bool) (uint64, error) {
	if !hasReferrer || protocolFee == 0 || referrerFeeShare == 0 {
		return 0, nil
	}
	return MulDiv64(protocolFee, uint64(referrerFeeShare), types.BasisPointMax)
}
