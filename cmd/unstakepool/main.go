package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"unstakepool/internal/config"
	"unstakepool/liqpool"
)

func main() {
	root := &cobra.Command{
		Use:          "unstakepool",
		Short:        "Unstake liquidity pool model",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Apply a JSONL scenario of pool operations",
		RunE:  runSimulate,
	}

	addPoolFlags(simulateCmd)
	simulateCmd.Flags().String("in", "", "input scenario JSONL")
	simulateCmd.Flags().String("out", "./data/results.jsonl", "output step results JSONL")
	simulateCmd.Flags().Int("batch-size", 100, "results per write")

	root.AddCommand(simulateCmd)

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote an unstake swap against a freshly seeded pool",
		RunE:  runQuote,
	}

	addPoolFlags(quoteCmd)
	quoteCmd.Flags().String("token", "", "token liquidity to seed the pool with")
	quoteCmd.Flags().String("amount", "", "st token amount to swap")

	root.AddCommand(quoteCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPoolFlags(cmd *cobra.Command) {
	cmd.Flags().String("max-fee", "3", "fee in percent at zero liquidity")
	cmd.Flags().String("min-fee", "0.3", "fee in percent at or above the liquidity target")
	cmd.Flags().String("liq-target", "100000", "liquidity target in tokens")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func newPool(cfg config.PoolConfig, logger *zap.Logger) (*liqpool.Pool, error) {
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	return liqpool.New(params.MaxFee, params.MinFee, params.LiqTarget, liqpool.WithLogger(logger))
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
