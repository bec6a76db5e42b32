// Package liqpool models an unstake liquidity pool with a linear swap fee.
//
// The pool holds a base token and a staked token. Liquidity providers
// deposit the base token for lp shares; stakers swap staked token for base
// token immediately, paying a fee that grows as post-swap liquidity drops
// below a target. A Pool is a plain value with no locking: callers that
// share one across goroutines must serialize access themselves.
package liqpool

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/math"
	"go.uber.org/zap"

	"unstakepool/liqpool/calc"
)

// Pool is the state of an unstake liquidity pool.
type Pool struct {
	maxFee    uint64
	minFee    uint64
	liqTarget uint64

	token         uint64
	stToken       uint64
	lpTokenSupply uint64

	logger *zap.Logger
}

// State is a snapshot of pool parameters and balances.
type State struct {
	MaxFee        uint64 `json:"max_fee"`
	MinFee        uint64 `json:"min_fee"`
	LiqTarget     uint64 `json:"liq_target"`
	Token         uint64 `json:"token"`
	StToken       uint64 `json:"st_token"`
	LpTokenSupply uint64 `json:"lp_token_supply"`
}

// Quote previews a swap without mutating the pool.
type Quote struct {
	StTokenIn uint64 `json:"st_token_in"`
	Fee       uint64 `json:"fee"`
	TokenOut  uint64 `json:"token_out"`
	FeeAmount uint64 `json:"fee_amount"`
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the logger used for debug traces of pool mutations.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pool) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates an empty pool. Fees are Unit-scaled fractions and liqTarget is
// in smallest token units.
func New(maxFee, minFee, liqTarget uint64, opts ...Option) (*Pool, error) {
	if maxFee < minFee {
		return nil, fmt.Errorf("new pool (max %d, min %d): %w", maxFee, minFee, ErrInvalidFeeRange)
	}

	p := &Pool{
		maxFee:    maxFee,
		minFee:    minFee,
		liqTarget: liqTarget,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// State returns a snapshot of the pool.
func (p *Pool) State() State {
	return State{
		MaxFee:        p.maxFee,
		MinFee:        p.minFee,
		LiqTarget:     p.liqTarget,
		Token:         p.token,
		StToken:       p.stToken,
		LpTokenSupply: p.lpTokenSupply,
	}
}

// TotalValue is token plus st token, both valued 1:1.
func (p *Pool) TotalValue() (uint64, error) {
	total, overflow := math.SafeAdd(p.token, p.stToken)
	if overflow {
		return 0, fmt.Errorf("total value %d+%d: %w", p.token, p.stToken, ErrCalculation)
	}
	return total, nil
}

// AddLiquidity deposits tokenAmount and returns the lp tokens minted for it.
//
// Shares are minted in proportion to the deposit's fraction of total pool
// value; the first depositor receives tokenAmount shares.
func (p *Pool) AddLiquidity(tokenAmount uint64) (uint64, error) {
	totalValue, err := p.TotalValue()
	if err != nil {
		return 0, err
	}
	minted, err := calc.Shares(tokenAmount, totalValue, p.lpTokenSupply)
	if err != nil {
		return 0, err
	}

	token, overflow := math.SafeAdd(p.token, tokenAmount)
	if overflow {
		return 0, fmt.Errorf("add liquidity %d: token balance: %w", tokenAmount, ErrCalculation)
	}
	supply, overflow := math.SafeAdd(p.lpTokenSupply, minted)
	if overflow {
		return 0, fmt.Errorf("add liquidity %d: lp supply: %w", tokenAmount, ErrCalculation)
	}

	p.token = token
	p.lpTokenSupply = supply

	p.logger.Debug("add liquidity",
		zap.Uint64("token_in", tokenAmount),
		zap.Uint64("lp_minted", minted),
		zap.Uint64("token", p.token),
		zap.Uint64("lp_supply", p.lpTokenSupply),
	)
	return minted, nil
}

// RemoveLiquidity burns lpAmount and returns the token and st token paid out,
// each floor-rounded from the caller's share independently.
func (p *Pool) RemoveLiquidity(lpAmount uint64) (uint64, uint64, error) {
	if p.lpTokenSupply == 0 {
		return 0, 0, invalidInput("no liquidity minted")
	}
	if lpAmount > p.lpTokenSupply {
		return 0, 0, invalidInput("cannot remove %d lp tokens, only %d minted", lpAmount, p.lpTokenSupply)
	}

	tokenAmount, err := calc.Proportion(lpAmount, p.token, p.lpTokenSupply)
	if err != nil {
		return 0, 0, err
	}
	stTokenAmount, err := calc.Proportion(lpAmount, p.stToken, p.lpTokenSupply)
	if err != nil {
		return 0, 0, err
	}

	p.lpTokenSupply -= lpAmount
	p.token -= tokenAmount
	p.stToken -= stTokenAmount

	p.logger.Debug("remove liquidity",
		zap.Uint64("lp_burned", lpAmount),
		zap.Uint64("token_out", tokenAmount),
		zap.Uint64("st_token_out", stTokenAmount),
		zap.Uint64("token", p.token),
		zap.Uint64("st_token", p.stToken),
		zap.Uint64("lp_supply", p.lpTokenSupply),
	)
	return tokenAmount, stTokenAmount, nil
}

// QuoteSwap computes the fee and payout of swapping stTokenAmount without
// changing the pool.
func (p *Pool) QuoteSwap(stTokenAmount uint64) (Quote, error) {
	fee, err := p.linearFee(stTokenAmount)
	if err != nil {
		return Quote{}, err
	}
	out, err := calc.ApplyFee(stTokenAmount, fee)
	if err != nil {
		return Quote{}, err
	}
	if out > p.token {
		return Quote{}, fmt.Errorf("swap %d: payout %d exceeds token balance %d: %w",
			stTokenAmount, out, p.token, ErrInsufficientLiquidity)
	}
	return Quote{
		StTokenIn: stTokenAmount,
		Fee:       fee,
		TokenOut:  out,
		FeeAmount: stTokenAmount - out,
	}, nil
}

// Swap performs an immediate unstake: stTokenAmount enters the pool at face
// value and the fee-discounted token amount leaves it.
func (p *Pool) Swap(stTokenAmount uint64) (uint64, error) {
	q, err := p.QuoteSwap(stTokenAmount)
	if err != nil {
		return 0, err
	}
	stToken, overflow := math.SafeAdd(p.stToken, stTokenAmount)
	if overflow {
		return 0, fmt.Errorf("swap %d: st token balance: %w", stTokenAmount, ErrCalculation)
	}

	p.token -= q.TokenOut
	p.stToken = stToken

	p.logger.Debug("swap",
		zap.Uint64("st_token_in", stTokenAmount),
		zap.Uint64("fee", q.Fee),
		zap.Uint64("token_out", q.TokenOut),
		zap.Uint64("token", p.token),
		zap.Uint64("st_token", p.stToken),
	)
	return q.TokenOut, nil
}

// LinearFee returns the fee fraction a swap of stTokenAmount would pay now.
func (p *Pool) LinearFee(stTokenAmount uint64) (uint64, error) {
	return p.linearFee(stTokenAmount)
}

// linearFee interpolates between maxFee at zero liquidity and minFee at
// liqTarget, evaluated at the liquidity left after the swap.
func (p *Pool) linearFee(stTokenAmount uint64) (uint64, error) {
	if stTokenAmount > p.token {
		return p.maxFee, nil
	}
	liqAfter := p.token - stTokenAmount
	if liqAfter >= p.liqTarget {
		return p.minFee, nil
	}
	discount, err := calc.Proportion(p.maxFee-p.minFee, liqAfter, p.liqTarget)
	if err != nil {
		return 0, err
	}
	return p.maxFee - discount, nil
}
