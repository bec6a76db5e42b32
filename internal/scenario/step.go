package scenario

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"unstakepool/internal/amount"
	"unstakepool/internal/model"
)

// ParseStep decodes one scenario line and normalizes its op name.
func ParseStep(line []byte) (model.StepRecord, error) {
	var rec model.StepRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return model.StepRecord{}, fmt.Errorf("decode step: %w", err)
	}
	op := normalizeOp(rec.Op)
	if op == "" {
		return model.StepRecord{}, fmt.Errorf("unsupported op: %q", rec.Op)
	}
	rec.Op = op
	return rec, nil
}

// StepAmount returns the step amount in smallest units.
func StepAmount(rec model.StepRecord) (uint64, error) {
	if rec.Raw != "" {
		raw, err := decimal.NewFromString(rec.Raw.String())
		if err != nil {
			return 0, fmt.Errorf("invalid raw amount %q: %w", rec.Raw, err)
		}
		return amount.FromRaw(raw)
	}
	return amount.ParseTokens(rec.Amount)
}

func normalizeOp(op string) string {
	switch strings.ToLower(strings.TrimSpace(op)) {
	case "add_liquidity", "add", "deposit":
		return model.OpAddLiquidity
	case "remove_liquidity", "remove", "withdraw":
		return model.OpRemoveLiquidity
	case "swap", "unstake":
		return model.OpSwap
	case "quote":
		return model.OpQuote
	default:
		return ""
	}
}
