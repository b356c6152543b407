package main

import (
	"fmt"
	"os"

	"cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Solana-ZH/dloom/pkg/config"
	"github.com/Solana-ZH/dloom/pkg/events"
	"github.com/Solana-ZH/dloom/pkg/fixedpoint"
	"github.com/Solana-ZH/dloom/pkg/oracle"
	"github.com/Solana-ZH/dloom/pkg/pool/amm"
	"github.com/Solana-ZH/dloom/pkg/pool/dlmm"
	"github.com/Solana-ZH/dloom/pkg/protocol"
	"github.com/Solana-ZH/dloom/pkg/router"
	"github.com/Solana-ZH/dloom/pkg/snapshot"
	"github.com/Solana-ZH/dloom/pkg/sol"
	"github.com/Solana-ZH/dloom/utils"
)

const defaultSlippageBps = 100 // 1%

type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
	log        zerolog.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "dloom",
		Short:        "Quote and inspect dloom AMM and DLMM pools",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			envErr := utils.LoadEnv()
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.Log.Level = a.logLevel
			}
			a.cfg = cfg
			a.log = utils.NewLogger("cli", cfg.Log.Level)
			if envErr != nil {
				a.log.Warn().Err(envErr).Msg("ignoring .env")
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./dloom.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override")

	root.AddCommand(a.quoteCmd(), a.priceCmd(), a.pdaCmd(), a.feeCmd(), a.routeCmd())
	return root
}

func (a *app) quoteCmd() *cobra.Command {
	var snapshotPath, inputMint string
	var amountIn uint64
	var slippageBps uint16

	cmd := &cobra.Command{Use: "quote", Short: "Offline quote from a JSON pool snapshot"}
	cmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "pool snapshot file")
	cmd.PersistentFlags().StringVar(&inputMint, "input-mint", "", "mint being sold")
	cmd.PersistentFlags().Uint64Var(&amountIn, "amount", 0, "input amount in base units")
	cmd.PersistentFlags().Uint16Var(&slippageBps, "slippage-bps", defaultSlippageBps, "slippage tolerance")
	_ = cmd.MarkPersistentFlagRequired("snapshot")
	_ = cmd.MarkPersistentFlagRequired("input-mint")

	cmd.AddCommand(&cobra.Command{
		Use:   "amm",
		Short: "Quote a constant-product pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(snapshotPath)
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}
			pool, err := snapshot.Amm(data)
			if err != nil {
				return err
			}
			mint, err := solana.PublicKeyFromBase58(inputMint)
			if err != nil {
				return fmt.Errorf("invalid input mint: %w", err)
			}
			dir, err := pool.Direction(mint)
			if err != nil {
				return err
			}
			res, err := pool.Swap(amm.SwapParams{Direction: dir, AmountIn: amountIn, LpSupply: pool.LpSupply})
			if err != nil {
				return err
			}
			events.NewLogSink(a.log).Emit(res.Event)

			priceA, priceB, err := oracle.SpotPrices(pool.ReservesA, pool.ReservesB)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "amount out:     %d\n", res.AmountOut)
			fmt.Fprintf(out, "min amount out: %d\n", fixedpoint.MinAmountOut64(res.AmountOut, slippageBps))
			fmt.Fprintf(out, "fees:           lp %d protocol %d\n", res.LpFee, res.ProtocolFee)
			fmt.Fprintf(out, "spot after:     A %s  B %s\n", oracle.ToDecimal(priceA), oracle.ToDecimal(priceB))
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "dlmm",
		Short: "Quote a bin pool",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(snapshotPath)
			if err != nil {
				return fmt.Errorf("failed to read snapshot: %w", err)
			}
			pool, err := snapshot.Dlmm(data)
			if err != nil {
				return err
			}
			mint, err := solana.PublicKeyFromBase58(inputMint)
			if err != nil {
				return fmt.Errorf("invalid input mint: %w", err)
			}
			dir, err := pool.Direction(mint)
			if err != nil {
				return err
			}
			res, err := pool.QuoteSwap(dir, amountIn)
			if err != nil {
				return err
			}
			a.log.Debug().Int("bins", len(pool.Bins)).Int32("active", pool.ActiveBinID).Msg("quoted snapshot")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "amount out:     %d\n", res.AmountOut)
			fmt.Fprintf(out, "min amount out: %d\n", fixedpoint.MinAmountOut64(res.AmountOut, slippageBps))
			fmt.Fprintf(out, "fees:           lp %d protocol %d\n", res.LpFee, res.ProtocolFee)
			fmt.Fprintf(out, "final bin:      %d (%d crossed)\n", res.FinalBinID, res.BinsCrossed)
			return nil
		},
	})
	return cmd
}

func (a *app) priceCmd() *cobra.Command {
	var binID int32
	var binStep uint16
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price of a bin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := dlmm.GetPriceAtBin(binID, binStep)
			if err != nil {
				return err
			}
			d, err := dlmm.PriceDecimal(binID, binStep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "bin %d step %d: %s (%s)\n", binID, binStep, raw, d)
			return nil
		},
	}
	cmd.Flags().Int32Var(&binID, "bin-id", 0, "bin id")
	cmd.Flags().Uint16Var(&binStep, "bin-step", 0, "bin step in basis points")
	_ = cmd.MarkFlagRequired("bin-step")
	return cmd
}

func (a *app) pdaCmd() *cobra.Command {
	var mintA, mintB, poolKey, ownerKey, positionMint string
	var binStep uint16
	var binID int32

	cmd := &cobra.Command{Use: "pda", Short: "Derive record addresses"}
	cmd.PersistentFlags().StringVar(&mintA, "mint-a", "", "mint A")
	cmd.PersistentFlags().StringVar(&mintB, "mint-b", "", "mint B")
	cmd.PersistentFlags().StringVar(&poolKey, "pool", "", "pool address")
	cmd.PersistentFlags().StringVar(&ownerKey, "owner", "", "owner address")
	cmd.PersistentFlags().StringVar(&positionMint, "position-mint", "", "position mint")
	cmd.PersistentFlags().Uint16Var(&binStep, "bin-step", 0, "bin step")
	cmd.PersistentFlags().Int32Var(&binID, "bin-id", 0, "bin id")

	derive := func(use string, run func(programID solana.PublicKey) (solana.PublicKey, error)) *cobra.Command {
		return &cobra.Command{
			Use: use,
			RunE: func(cmd *cobra.Command, _ []string) error {
				programID, err := a.cfg.Program()
				if err != nil {
					return err
				}
				addr, err := run(programID)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), addr)
				return nil
			},
		}
	}
	pair := func() (solana.PublicKey, solana.PublicKey, error) {
		first, err := solana.PublicKeyFromBase58(mintA)
		if err != nil {
			return solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("invalid mint-a: %w", err)
		}
		second, err := solana.PublicKeyFromBase58(mintB)
		if err != nil {
			return solana.PublicKey{}, solana.PublicKey{}, fmt.Errorf("invalid mint-b: %w", err)
		}
		return first, second, nil
	}
	key := func(name, value string) (solana.PublicKey, error) {
		k, err := solana.PublicKeyFromBase58(value)
		if err != nil {
			return solana.PublicKey{}, fmt.Errorf("invalid %s: %w", name, err)
		}
		return k, nil
	}

	cmd.AddCommand(
		derive("amm-pool", func(programID solana.PublicKey) (solana.PublicKey, error) {
			first, second, err := pair()
			if err != nil {
				return solana.PublicKey{}, err
			}
			addr, _ := sol.DeriveAmmPoolPDA(programID, first, second)
			return addr, nil
		}),
		derive("dlmm-pool", func(programID solana.PublicKey) (solana.PublicKey, error) {
			first, second, err := pair()
			if err != nil {
				return solana.PublicKey{}, err
			}
			addr, _ := sol.DeriveDlmmPoolPDA(programID, first, second, binStep)
			return addr, nil
		}),
		derive("bin", func(programID solana.PublicKey) (solana.PublicKey, error) {
			pool, err := key("pool", poolKey)
			if err != nil {
				return solana.PublicKey{}, err
			}
			addr, _ := sol.DeriveBinPDA(programID, pool, binID)
			return addr, nil
		}),
		derive("position", func(programID solana.PublicKey) (solana.PublicKey, error) {
			mint, err := key("position-mint", positionMint)
			if err != nil {
				return solana.PublicKey{}, err
			}
			addr, _ := sol.DerivePositionPDA(programID, mint)
			return addr, nil
		}),
		derive("amm-position", func(programID solana.PublicKey) (solana.PublicKey, error) {
			owner, err := key("owner", ownerKey)
			if err != nil {
				return solana.PublicKey{}, err
			}
			pool, err := key("pool", poolKey)
			if err != nil {
				return solana.PublicKey{}, err
			}
			addr, _ := sol.DeriveAmmPositionPDA(programID, owner, pool)
			return addr, nil
		}),
		derive("transaction-bins", func(programID solana.PublicKey) (solana.PublicKey, error) {
			owner, err := key("owner", ownerKey)
			if err != nil {
				return solana.PublicKey{}, err
			}
			addr, _ := sol.DeriveTransactionBinsPDA(programID, owner)
			return addr, nil
		}),
		derive("protocol-config", func(programID solana.PublicKey) (solana.PublicKey, error) {
			addr, _ := sol.DeriveProtocolConfigPDA(programID)
			return addr, nil
		}),
		derive("dlmm-parameters", func(programID solana.PublicKey) (solana.PublicKey, error) {
			addr, _ := sol.DeriveDlmmParametersPDA(programID)
			return addr, nil
		}),
	)
	return cmd
}

func (a *app) feeCmd() *cobra.Command {
	var accumulator uint64
	var elapsed int64
	cmd := &cobra.Command{Use: "fee", Short: "Dynamic fee tools"}
	preview := &cobra.Command{
		Use:   "preview",
		Short: "Fee rate the automatic update would set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "fee rate: %d bps\n", dlmm.ComputeDynamicFee(accumulator, elapsed))
			return nil
		},
	}
	preview.Flags().Uint64Var(&accumulator, "accumulator", 0, "volatility accumulator")
	preview.Flags().Int64Var(&elapsed, "elapsed", 0, "seconds since the last update")
	cmd.AddCommand(preview)
	return cmd
}

func (a *app) routeCmd() *cobra.Command {
	var baseMint, quoteMint string
	var amountIn uint64
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Find the best on-chain pool for a trade",
		RunE: func(cmd *cobra.Command, _ []string) error {
			programID, err := a.cfg.Program()
			if err != nil {
				return err
			}
			solClient := sol.NewClient(a.cfg.RPC.URL)
			loader := protocol.NewDloom(solClient, programID, a.cfg.BinSteps(), a.log.With().Str("component", "protocol").Logger())
			r := router.NewSimpleRouter(a.log.With().Str("component", "router").Logger(), loader)

			pools, err := r.QueryAllPools(cmd.Context(), baseMint, quoteMint)
			if err != nil {
				return fmt.Errorf("failed to query all pools: %w", err)
			}
			for _, pool := range pools {
				a.log.Info().Str("pool", pool.GetID()).Str("protocol", string(pool.ProtocolName())).Msg("found pool")
			}

			bestPool, amountOut, err := r.GetBestPool(cmd.Context(), baseMint, math.NewIntFromUint64(amountIn))
			if err != nil {
				return fmt.Errorf("failed to get best pool: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "best pool: %s (%s)\nexpected out: %s\n", bestPool.GetID(), bestPool.ProtocolName(), amountOut)
			return nil
		},
	}
	cmd.Flags().StringVar(&baseMint, "base", "", "mint being sold")
	cmd.Flags().StringVar(&quoteMint, "quote", "", "mint being bought")
	cmd.Flags().Uint64Var(&amountIn, "amount", 0, "input amount in base units")
	_ = cmd.MarkFlagRequired("base")
	_ = cmd.MarkFlagRequired("quote")
	return cmd
}
