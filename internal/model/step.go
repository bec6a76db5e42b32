package model

import "encoding/json"

// Step operations.
const (
	OpAddLiquidity    = "add_liquidity"
	OpRemoveLiquidity = "remove_liquidity"
	OpSwap            = "swap"
	OpQuote           = "quote"
)

// StepRecord is one scenario line. Amount is a decimal token string; Raw,
// when set, is an amount already in smallest units and takes precedence.
type StepRecord struct {
	Op     string      `json:"op"`
	Amount string      `json:"amount,omitempty"`
	Raw    json.Number `json:"raw,omitempty"`
	Note   string      `json:"note,omitempty"`
}
