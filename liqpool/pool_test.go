package liqpool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"unstakepool/liqpool/calc"
)

const unit = calc.Unit

func newExamplePool(t *testing.T) *Pool {
	t.Helper()
	p, err := New(3*unit/100, 3*unit/1000, 100000*unit, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return p
}

func TestNewRejectsInvertedFees(t *testing.T) {
	p, err := New(1, 2, 100)
	require.ErrorIs(t, err, ErrInvalidFeeRange)
	require.Nil(t, p)
}

func TestNewAllowsEqualFees(t *testing.T) {
	p, err := New(5, 5, 100)
	require.NoError(t, err)
	require.Equal(t, State{MaxFee: 5, MinFee: 5, LiqTarget: 100}, p.State())
}

func TestAddLiquidity(t *testing.T) {
	p := newExamplePool(t)

	minted, err := p.AddLiquidity(500 * unit)
	require.NoError(t, err)
	require.Equal(t, 500*unit, minted)
	require.Equal(t, 500*unit, p.lpTokenSupply)
	require.Equal(t, 500*unit, p.token)
}

func TestAddLiquidityOverflowLeavesPoolUntouched(t *testing.T) {
	p := newExamplePool(t)
	_, err := p.AddLiquidity(^uint64(0))
	require.NoError(t, err)
	before := p.State()

	_, err = p.AddLiquidity(1)
	require.ErrorIs(t, err, ErrCalculation)
	require.Equal(t, before, p.State())
}

func TestRemoveLiquidity(t *testing.T) {
	p := newExamplePool(t)
	p.token = 500 * unit
	p.stToken = 100 * unit
	p.lpTokenSupply = 600 * unit

	token, stToken, err := p.RemoveLiquidity(300 * unit)
	require.NoError(t, err)
	require.Equal(t, 250*unit, token)
	require.Equal(t, 50*unit, stToken)
	require.Equal(t, 250*unit, p.token)
	require.Equal(t, 50*unit, p.stToken)

	token, stToken, err = p.RemoveLiquidity(300 * unit)
	require.NoError(t, err)
	require.Equal(t, 250*unit, token)
	require.Equal(t, 50*unit, stToken)
	require.Zero(t, p.token)
	require.Zero(t, p.stToken)
	require.Zero(t, p.lpTokenSupply)
}

func TestRemoveTooMuchLiquidity(t *testing.T) {
	p := newExamplePool(t)
	_, err := p.AddLiquidity(50)
	require.NoError(t, err)

	_, _, err = p.RemoveLiquidity(100)
	require.ErrorIs(t, err, ErrInvalidInput)

	var inputErr *InvalidInputError
	require.True(t, errors.As(err, &inputErr))
	require.NotEmpty(t, inputErr.Reason)
	require.Equal(t, uint64(50), p.lpTokenSupply)
}

func TestRemoveFromEmptyPool(t *testing.T) {
	p := newExamplePool(t)
	_, _, err := p.RemoveLiquidity(0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDepositWithdrawRoundTrip(t *testing.T) {
	for _, x := range []uint64{1, 7, 999, 123456789 * unit} {
		p := newExamplePool(t)
		minted, err := p.AddLiquidity(x)
		require.NoError(t, err)

		token, stToken, err := p.RemoveLiquidity(minted)
		require.NoError(t, err)
		require.Equal(t, x, token)
		require.Zero(t, stToken)
	}
}

func TestLinearFeeWithTargetReached(t *testing.T) {
	p := newExamplePool(t)
	_, err := p.AddLiquidity(581250 * unit)
	require.NoError(t, err)

	fee, err := p.linearFee(90 * unit)
	require.NoError(t, err)
	require.Equal(t, 3*unit/1000, fee)
}

func TestLinearFeeWithTargetNotReached(t *testing.T) {
	p := newExamplePool(t)
	_, err := p.AddLiquidity(100030 * unit)
	require.NoError(t, err)

	fee, err := p.LinearFee(9030 * unit)
	require.NoError(t, err)
	require.Equal(t, 543*unit/100000, fee)
}

func TestLinearFeeAboveLiquidity(t *testing.T) {
	p := newExamplePool(t)
	_, err := p.AddLiquidity(10 * unit)
	require.NoError(t, err)

	fee, err := p.linearFee(11 * unit)
	require.NoError(t, err)
	require.Equal(t, p.maxFee, fee)
}

func TestLinearFeeMonotonic(t *testing.T) {
	p := newExamplePool(t)
	_, err := p.AddLiquidity(150000 * unit)
	require.NoError(t, err)

	// larger swaps leave less liquidity, so the fee can only grow
	prev := p.minFee
	for amount := uint64(0); amount <= 150000*unit; amount += 1000 * unit {
		fee, err := p.linearFee(amount)
		require.NoError(t, err)
		require.GreaterOrEqual(t, fee, prev)
		require.GreaterOrEqual(t, fee, p.minFee)
		require.LessOrEqual(t, fee, p.maxFee)
		prev = fee
	}
	require.Equal(t, p.maxFee, prev)
}

func TestLinearFeeZeroTarget(t *testing.T) {
	p, err := New(3*unit/100, 3*unit/1000, 0)
	require.NoError(t, err)
	_, err = p.AddLiquidity(10)
	require.NoError(t, err)

	fee, err := p.linearFee(10)
	require.NoError(t, err)
	require.Equal(t, p.minFee, fee)
}

func TestSwapWithTargetReached(t *testing.T) {
	p := newExamplePool(t)
	_, err := p.AddLiquidity(581250 * unit)
	require.NoError(t, err)

	out, err := p.Swap(90 * unit)
	require.NoError(t, err)
	require.Equal(t, 8973*unit/100, out)
}

func TestSwapWithTargetNotReached(t *testing.T) {
	p := newExamplePool(t)
	_, err := p.AddLiquidity(100030 * unit)
	require.NoError(t, err)

	out, err := p.Swap(9030 * unit)
	require.NoError(t, err)
	require.Equal(t, uint64(8980967100000), out)
}

func TestSwapInsufficientLiquidity(t *testing.T) {
	p := newExamplePool(t)
	_, err := p.Swap(100)
	require.ErrorIs(t, err, ErrInsufficientLiquidity)
	require.Equal(t, State{MaxFee: p.maxFee, MinFee: p.minFee, LiqTarget: p.liqTarget}, p.State())
}

func TestQuoteSwapDoesNotMutate(t *testing.T) {
	p := newExamplePool(t)
	_, err := p.AddLiquidity(100030 * unit)
	require.NoError(t, err)
	before := p.State()

	q, err := p.QuoteSwap(9030 * unit)
	require.NoError(t, err)
	require.Equal(t, Quote{
		StTokenIn: 9030 * unit,
		Fee:       543 * unit / 100000,
		TokenOut:  8980967100000,
		FeeAmount: 9030*unit - 8980967100000,
	}, q)
	require.Equal(t, before, p.State())
}

func TestComplexScenario(t *testing.T) {
	p, err := New(3*unit/100, 3*unit/1000, 500*unit, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)

	_, err = p.AddLiquidity(800 * unit)
	require.NoError(t, err)

	// post-swap liquidity 500.9 is above target, min fee applies
	out, err := p.Swap(300 * unit)
	require.NoError(t, err)
	require.Equal(t, 2991*unit/10, out)
	require.Equal(t, State{
		MaxFee: 3 * unit / 100, MinFee: 3 * unit / 1000, LiqTarget: 500 * unit,
		Token: 5009 * unit / 10, StToken: 300 * unit, LpTokenSupply: 800 * unit,
	}, p.State())

	// fee = 3% - 2.7% * (500.9 - 300) / 500 = 1.91514%
	fee, err := p.LinearFee(300 * unit)
	require.NoError(t, err)
	require.Equal(t, uint64(19151400), fee)

	out, err = p.Swap(300 * unit)
	require.NoError(t, err)
	require.Equal(t, 29425458*unit/100000, out)
	require.Equal(t, 20664542*unit/100000, p.token)
	require.Equal(t, 600*unit, p.stToken)
	require.Equal(t, 800*unit, p.lpTokenSupply)

	// total value 806.64542 exceeds 800 shares, so fewer lp tokens per token
	minted, err := p.AddLiquidity(400 * unit)
	require.NoError(t, err)
	require.Equal(t, uint64(396704663617), minted)
	require.Equal(t, 60664542*unit/100000, p.token)
	require.Equal(t, 600*unit, p.stToken)
	require.Equal(t, uint64(1196704663617), p.lpTokenSupply)

	token, stToken, err := p.RemoveLiquidity(200 * unit)
	require.NoError(t, err)
	require.Equal(t, uint64(101385987444), token)
	require.Equal(t, uint64(100275367555), stToken)
	require.Equal(t, uint64(505259432556), p.token)
	require.Equal(t, uint64(499724632445), p.stToken)
	require.Equal(t, uint64(996704663617), p.lpTokenSupply)
}
