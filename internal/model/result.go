package model

// PoolSnapshot is the pool state after a step, in smallest units.
type PoolSnapshot struct {
	Token         uint64 `json:"token"`
	StToken       uint64 `json:"st_token"`
	LpTokenSupply uint64 `json:"lp_token_supply"`
}

// StepResult records the outcome of applying one step.
type StepResult struct {
	Index      int          `json:"index"`
	Op         string       `json:"op"`
	Note       string       `json:"note,omitempty"`
	Input      uint64       `json:"input"`
	LpMinted   uint64       `json:"lp_minted,omitempty"`
	TokenOut   uint64       `json:"token_out,omitempty"`
	StTokenOut uint64       `json:"st_token_out,omitempty"`
	Fee        uint64       `json:"fee,omitempty"`
	Error      string       `json:"error,omitempty"`
	Pool       PoolSnapshot `json:"pool"`
}
