package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"unstakepool/internal/amount"
	"unstakepool/internal/config"
)

func runQuote(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadQuote(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Token == "" {
		return fmt.Errorf("token is required")
	}
	if cfg.Amount == "" {
		return fmt.Errorf("amount is required")
	}

	seed, err := amount.ParseTokens(cfg.Token)
	if err != nil {
		return fmt.Errorf("parse token: %w", err)
	}
	swapAmount, err := amount.ParseTokens(cfg.Amount)
	if err != nil {
		return fmt.Errorf("parse amount: %w", err)
	}

	pool, err := newPool(cfg.Pool, logger)
	if err != nil {
		return err
	}
	if _, err := pool.AddLiquidity(seed); err != nil {
		return fmt.Errorf("seed pool: %w", err)
	}

	q, err := pool.QuoteSwap(swapAmount)
	if err != nil {
		return err
	}

	logger.Debug("quote", zap.Uint64("seed", seed), zap.Uint64("amount", swapAmount), zap.Uint64("fee", q.Fee))

	line, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal quote: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(line))
	return nil
}
