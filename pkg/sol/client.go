package sol

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Client reads program records over RPC.
type Client struct {
	RpcClient *rpc.Client
}

// NewClient creates a client for the given RPC endpoint.
func NewClient(endpoint string) *Client {
	return &Client{RpcClient: rpc.New(endpoint)}
}

// GetAccountData returns the raw data of one account.
func (c *Client) GetAccountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	res, err := c.RpcClient.GetAccountInfo(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", address, err)
	}
	if res == nil || res.Value == nil {
		return nil, fmt.Errorf("account %s not found", address)
	}
	return res.Value.Data.GetBinary(), nil
}

// GetMultipleAccountData returns raw data for each address, nil where the account does not exist.
func (c *Client) GetMultipleAccountData(ctx context.Context, addresses ...solana.PublicKey) ([][]byte, error) {
	res, err := c.RpcClient.GetMultipleAccounts(ctx, addresses...)
	if err != nil {
		return nil, fmt.Errorf("failed to get %d accounts: %w", len(addresses), err)
	}
	out := make([][]byte, len(addresses))
	for i, acc := range res.Value {
		if i >= len(out) {
			break
		}
		if acc != nil {
			out[i] = acc.Data.GetBinary()
		}
	}
	return out, nil
}
