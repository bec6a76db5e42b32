package scenario

import (
	"math/big"

	"unstakepool/internal/model"
)

// Summary accumulates totals over a scenario run. Totals use big.Int since
// a long run can move more than fits in 64 bits.
type Summary struct {
	Total     int
	Applied   map[string]int
	Rejected  int
	Malformed int

	Deposited    *big.Int
	LpMinted     *big.Int
	LpBurned     *big.Int
	TokenRemoved *big.Int
	StRemoved    *big.Int
	StSwappedIn  *big.Int
	TokenPaidOut *big.Int
}

func NewSummary() *Summary {
	return &Summary{
		Applied:      make(map[string]int),
		Deposited:    big.NewInt(0),
		LpMinted:     big.NewInt(0),
		LpBurned:     big.NewInt(0),
		TokenRemoved: big.NewInt(0),
		StRemoved:    big.NewInt(0),
		StSwappedIn:  big.NewInt(0),
		TokenPaidOut: big.NewInt(0),
	}
}

// Add records a step result.
func (s *Summary) Add(res model.StepResult) {
	s.Total++
	if res.Error != "" {
		s.Rejected++
		return
	}
	s.Applied[res.Op]++

	switch res.Op {
	case model.OpAddLiquidity:
		addUint(s.Deposited, res.Input)
		addUint(s.LpMinted, res.LpMinted)
	case model.OpRemoveLiquidity:
		addUint(s.LpBurned, res.Input)
		addUint(s.TokenRemoved, res.TokenOut)
		addUint(s.StRemoved, res.StTokenOut)
	case model.OpSwap:
		addUint(s.StSwappedIn, res.Input)
		addUint(s.TokenPaidOut, res.TokenOut)
	}
}

// AddMalformed counts a line that could not be turned into a step.
func (s *Summary) AddMalformed() {
	s.Total++
	s.Malformed++
}

// FeeRevenue is the st token taken in by swaps minus the token paid out.
func (s *Summary) FeeRevenue() *big.Int {
	return new(big.Int).Sub(s.StSwappedIn, s.TokenPaidOut)
}

func addUint(target *big.Int, value uint64) {
	target.Add(target, new(big.Int).SetUint64(value))
}
