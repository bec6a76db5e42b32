package calc

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/holiman/uint256"
)

// Unit is how 1.0 is represented in fixed point. Values below Unit are
// fractions; 1 is the smallest native unit of a token.
const Unit uint64 = 1_000_000_000

// ErrCalculation reports an arithmetic step that cannot be represented in 64 bits.
var ErrCalculation = errors.New("erroneous calculation")

// Proportion returns floor(amount * numerator / denominator).
//
// The product is computed in 256 bits, so only a quotient above
// math.MaxUint64 fails. A zero denominator is a caller bug and is reported
// as ErrCalculation rather than panicking.
func Proportion(amount, numerator, denominator uint64) (uint64, error) {
	if denominator == 0 {
		return 0, fmt.Errorf("proportion %d*%d/0: division by zero: %w", amount, numerator, ErrCalculation)
	}

	x := uint256.NewInt(amount)
	y := uint256.NewInt(numerator)
	d := uint256.NewInt(denominator)
	res, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow || !res.IsUint64() {
		return 0, fmt.Errorf("proportion %d*%d/%d: %w", amount, numerator, denominator, ErrCalculation)
	}
	return res.Uint64(), nil
}

// Value applies a Unit-scaled price to amount.
func Value(amount, price uint64) (uint64, error) {
	return Proportion(amount, price, Unit)
}

// Shares returns how many shares a deposit worth value mints in a pool
// holding totalValue backed by totalShares. The first mint is 1:1.
func Shares(value, totalValue, totalShares uint64) (uint64, error) {
	if totalShares == 0 {
		return value, nil
	}
	return Proportion(value, totalShares, totalValue)
}

// ApplyFee returns amount with a Unit-scaled fee fraction subtracted.
func ApplyFee(amount, fee uint64) (uint64, error) {
	cut, err := Value(amount, fee)
	if err != nil {
		return 0, err
	}
	net, underflow := math.SafeSub(amount, cut)
	if underflow {
		return 0, fmt.Errorf("apply fee %d to %d: %w", fee, amount, ErrCalculation)
	}
	return net, nil
}
