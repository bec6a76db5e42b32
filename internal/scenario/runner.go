package scenario

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"unstakepool/internal/model"
	"unstakepool/internal/storage"
	"unstakepool/liqpool"
)

// Config controls a scenario run.
type Config struct {
	BatchSize int
}

// Runner applies scenario steps to a pool and writes each outcome to a sink.
type Runner struct {
	cfg    Config
	pool   *liqpool.Pool
	sink   storage.Sink
	logger *zap.Logger
	index  int
}

// NewRunner builds a Runner with its dependencies.
func NewRunner(cfg Config, pool *liqpool.Pool, sink storage.Sink, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &Runner{
		cfg:    cfg,
		pool:   pool,
		sink:   sink,
		logger: logger,
	}
}

// Run reads JSONL steps from input until EOF. A step the pool rejects is
// recorded with its error and the run continues; malformed lines are logged
// and skipped.
func (r *Runner) Run(ctx context.Context, input io.Reader) (*Summary, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	if r.sink == nil {
		return nil, fmt.Errorf("sink is nil")
	}

	summary := NewSummary()
	batch := make([]model.StepResult, 0, r.cfg.BatchSize)

	scanner := bufio.NewScanner(input)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		rec, err := ParseStep(raw)
		if err != nil {
			summary.AddMalformed()
			r.logger.Warn("skip step", zap.Int("line", line), zap.Error(err))
			continue
		}

		res := r.Apply(rec)
		summary.Add(res)
		batch = append(batch, res)

		if len(batch) >= r.cfg.BatchSize {
			if err := r.sink.PutResultBatch(batch); err != nil {
				return summary, fmt.Errorf("store results: %w", err)
			}
			batch = batch[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("scan input: %w", err)
	}

	if err := r.sink.PutResultBatch(batch); err != nil {
		return summary, fmt.Errorf("store results: %w", err)
	}

	return summary, nil
}

// Apply executes one step against the pool.
func (r *Runner) Apply(rec model.StepRecord) model.StepResult {
	res := model.StepResult{
		Index: r.index,
		Op:    rec.Op,
		Note:  rec.Note,
	}
	r.index++

	value, err := StepAmount(rec)
	if err == nil {
		res.Input = value
		err = r.applyOp(&res)
	}
	if err != nil {
		res.Error = err.Error()
		r.logger.Info("step rejected", zap.Int("index", res.Index), zap.String("op", res.Op), zap.Error(err))
	}

	state := r.pool.State()
	res.Pool = model.PoolSnapshot{
		Token:         state.Token,
		StToken:       state.StToken,
		LpTokenSupply: state.LpTokenSupply,
	}
	return res
}

func (r *Runner) applyOp(res *model.StepResult) error {
	switch res.Op {
	case model.OpAddLiquidity:
		minted, err := r.pool.AddLiquidity(res.Input)
		if err != nil {
			return err
		}
		res.LpMinted = minted
	case model.OpRemoveLiquidity:
		token, stToken, err := r.pool.RemoveLiquidity(res.Input)
		if err != nil {
			return err
		}
		res.TokenOut = token
		res.StTokenOut = stToken
	case model.OpSwap:
		q, err := r.pool.QuoteSwap(res.Input)
		if err != nil {
			return err
		}
		out, err := r.pool.Swap(res.Input)
		if err != nil {
			return err
		}
		res.Fee = q.Fee
		res.TokenOut = out
	case model.OpQuote:
		q, err := r.pool.QuoteSwap(res.Input)
		if err != nil {
			return err
		}
		res.Fee = q.Fee
		res.TokenOut = q.TokenOut
	default:
		return fmt.Errorf("unsupported op: %q", res.Op)
	}
	return nil
}
