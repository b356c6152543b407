package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Solana-ZH/dloom/pkg/sol"
)

func run(t *testing.T, args ...string) string {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestPriceCommand(t *testing.T) {
	assert.Equal(t, "bin 1 step 20: 1002000000000 (1.002)\n", run(t, "price", "--bin-id", "1", "--bin-step", "20"))
}

func TestFeePreviewCommand(t *testing.T) {
	assert.Equal(t, "fee rate: 12 bps\n", run(t, "fee", "preview", "--accumulator", "100", "--elapsed", "3601"))
}

func TestPdaCommand(t *testing.T) {
	want, _ := sol.DeriveProtocolConfigPDA(sol.ProgramID)
	assert.Equal(t, want.String()+"\n", run(t, "pda", "protocol-config"))
}

func TestQuoteAmmCommand(t *testing.T) {
	mintA := solana.PublicKeyFromBytes(append([]byte{1}, make([]byte, 31)...))
	mintB := solana.PublicKeyFromBytes(append([]byte{2}, make([]byte, 31)...))
	path := filepath.Join(t.TempDir(), "pool.json")
	doc := fmt.Sprintf(`{"mint_a":%q,"mint_b":%q,"fee_rate":30,"protocol_fee_share":5000,"reserve_a":1000000,"reserve_b":2000000}`, mintA, mintB)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	out := run(t, "quote", "amm", "--snapshot", path, "--input-mint", mintA.String(), "--amount", "10000")
	assert.Contains(t, out, "amount out:     19742\n")
	assert.Contains(t, out, "min amount out: 19544\n")
}
