package liqpool

import (
	"errors"
	"fmt"

	"unstakepool/liqpool/calc"
)

var (
	// ErrCalculation is returned when an arithmetic step overflows or underflows.
	ErrCalculation = calc.ErrCalculation
	// ErrInvalidInput matches every *InvalidInputError.
	ErrInvalidInput = errors.New("logically impossible input value")
	// ErrInsufficientLiquidity is returned when a swap payout exceeds the held token balance.
	ErrInsufficientLiquidity = errors.New("pool liquidity too small to execute operation")
	// ErrInvalidFeeRange is returned by New when max fee is below min fee.
	ErrInvalidFeeRange = errors.New("max fee cannot be smaller than min fee")
)

// InvalidInputError describes an input that cannot be honored given the pool state.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(format string, args ...interface{}) error {
	return &InvalidInputError{Reason: fmt.Sprintf(format, args...)}
}
