package config

import (
	"fmt"

	"unstakepool/internal/amount"
)

// PoolParams are pool parameters in fixed point.
type PoolParams struct {
	MaxFee    uint64
	MinFee    uint64
	LiqTarget uint64
}

// Params parses the configured fee percentages and liquidity target.
func (c PoolConfig) Params() (PoolParams, error) {
	maxFee, err := amount.ParsePercent(c.MaxFee)
	if err != nil {
		return PoolParams{}, fmt.Errorf("parse max-fee: %w", err)
	}
	minFee, err := amount.ParsePercent(c.MinFee)
	if err != nil {
		return PoolParams{}, fmt.Errorf("parse min-fee: %w", err)
	}
	liqTarget, err := amount.ParseTokens(c.LiqTarget)
	if err != nil {
		return PoolParams{}, fmt.Errorf("parse liq-target: %w", err)
	}
	return PoolParams{MaxFee: maxFee, MinFee: minFee, LiqTarget: liqTarget}, nil
}
