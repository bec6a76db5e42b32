package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"unstakepool/internal/config"
	"unstakepool/internal/scenario"
	"unstakepool/internal/storage"
)

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadSimulate(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}

	pool, err := newPool(cfg.Pool, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	inputFile, err := os.Open(cfg.In)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer inputFile.Close()

	sink := storage.NewJSONLSink(cfg.Out)
	if err := sink.Truncate(); err != nil {
		return err
	}

	logger.Info("simulate start",
		zap.String("in", cfg.In),
		zap.String("out", cfg.Out),
		zap.String("max_fee", cfg.Pool.MaxFee),
		zap.String("min_fee", cfg.Pool.MinFee),
		zap.String("liq_target", cfg.Pool.LiqTarget),
	)

	runner := scenario.NewRunner(scenario.Config{BatchSize: cfg.BatchSize}, pool, sink, logger)
	summary, err := runner.Run(ctx, inputFile)
	if err != nil {
		return err
	}

	state := pool.State()
	logger.Info("simulate complete",
		zap.Int("total", summary.Total),
		zap.Int("rejected", summary.Rejected),
		zap.Int("malformed", summary.Malformed),
		zap.Any("applied", summary.Applied),
		zap.Stringer("fee_revenue", summary.FeeRevenue()),
		zap.Stringer("lp_minted", summary.LpMinted),
		zap.Stringer("lp_burned", summary.LpBurned),
		zap.Uint64("token", state.Token),
		zap.Uint64("st_token", state.StToken),
		zap.Uint64("lp_supply", state.LpTokenSupply),
	)

	return nil
}
