// Package snapshot builds pools from JSON snapshots so quotes can run
// without an RPC endpoint.
//
// AMM snapshot:
//
//	{"mint_a": "...", "mint_b": "...", "fee_rate": 30, "protocol_fee_share": 5000,
//	 "reserve_a": "1000000", "reserve_b": "2000000"}
//
// DLMM snapshots add "bin_step", "active_bin_id" and a "bins" array of
// {"id": 0, "liquidity": "1000000"} objects.
package snapshot

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/tidwall/gjson"
	"lukechampine.com/uint128"

	"github.com/Solana-ZH/dloom/pkg/pool/amm"
	"github.com/Solana-ZH/dloom/pkg/pool/dlmm"
	"github.com/Solana-ZH/dloom/pkg/types"
)

type common struct {
	mintA, mintB     solana.PublicKey
	feeRate          uint16
	protocolFeeShare uint16
	referrerFeeShare uint16
	reserveA         uint64
	reserveB         uint64
}

func parseCommon(doc gjson.Result) (common, error) {
	var c common
	var err error
	if c.mintA, err = solana.PublicKeyFromBase58(doc.Get("mint_a").String()); err != nil {
		return c, fmt.Errorf("invalid mint_a: %w", err)
	}
	if c.mintB, err = solana.PublicKeyFromBase58(doc.Get("mint_b").String()); err != nil {
		return c, fmt.Errorf("invalid mint_b: %w", err)
	}
	c.feeRate = uint16(doc.Get("fee_rate").Uint())
	c.protocolFeeShare = uint16(doc.Get("protocol_fee_share").Uint())
	c.referrerFeeShare = uint16(doc.Get("referrer_fee_share").Uint())
	if err := types.ValidateFeeRates(c.feeRate, c.protocolFeeShare, c.referrerFeeShare); err != nil {
		return c, err
	}
	c.reserveA = doc.Get("reserve_a").Uint()
	c.reserveB = doc.Get("reserve_b").Uint()
	return c, nil
}

func parse(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("snapshot is not valid JSON")
	}
	return gjson.ParseBytes(data), nil
}

// Amm builds a constant-product pool from a snapshot.
func Amm(data []byte) (*amm.Pool, error) {
	doc, err := parse(data)
	if err != nil {
		return nil, err
	}
	c, err := parseCommon(doc)
	if err != nil {
		return nil, err
	}
	pool, _, err := amm.NewPool(amm.CreateParams{
		MintA:            c.mintA,
		MintB:            c.mintB,
		FeeRate:          c.feeRate,
		ProtocolFeeShare: c.protocolFeeShare,
		ReferrerFeeShare: c.referrerFeeShare,
	})
	if err != nil {
		return nil, err
	}
	pool.ReservesA, pool.ReservesB = c.reserveA, c.reserveB
	pool.LpSupply = doc.Get("lp_supply").Uint()
	return pool, nil
}

// Dlmm builds a bin pool and its bins from a snapshot.
func Dlmm(data []byte) (*dlmm.Pool, error) {
	doc, err := parse(data)
	if err != nil {
		return nil, err
	}
	c, err := parseCommon(doc)
	if err != nil {
		return nil, err
	}
	binStep := uint16(doc.Get("bin_step").Uint())
	pool, _, err := dlmm.NewPool(dlmm.CreateParams{
		MintA:            c.mintA,
		MintB:            c.mintB,
		BinStep:          binStep,
		FeeRate:          c.feeRate,
		ProtocolFeeShare: c.protocolFeeShare,
		ReferrerFeeShare: c.referrerFeeShare,
		InitialBinID:     int32(doc.Get("active_bin_id").Int()),
	}, &dlmm.Parameters{Official: []dlmm.Parameter{{BinStep: binStep, FeeRate: c.feeRate}}})
	if err != nil {
		return nil, err
	}
	pool.ReservesA, pool.ReservesB = c.reserveA, c.reserveB

	var parseErr error
	doc.Get("bins").ForEach(func(_, bin gjson.Result) bool {
		liquidity, err := uint128.FromString(bin.Get("liquidity").String())
		if err != nil {
			parseErr = fmt.Errorf("invalid liquidity for bin %s: %w", bin.Get("id").Raw, err)
			return false
		}
		pool.Bins.Put(&dlmm.Bin{Pool: pool.PoolID, BinID: int32(bin.Get("id").Int()), Liquidity: liquidity})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return pool, nil
}
