package amount

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"unstakepool/liqpool/calc"
)

// unitDigits is log10(calc.Unit).
const unitDigits = 9

// ParseTokens converts a decimal token amount ("89.73") into smallest units.
func ParseTokens(input string) (uint64, error) {
	return parseScaled(input, unitDigits)
}

// ParsePercent converts a percentage ("0.3") into a calc.Unit scaled fraction.
func ParsePercent(input string) (uint64, error) {
	return parseScaled(input, unitDigits-2)
}

// FromRaw checks that a raw smallest-unit value is usable as an amount.
func FromRaw(raw decimal.Decimal) (uint64, error) {
	return toUint64(raw, raw.String())
}

func parseScaled(input string, shift int32) (uint64, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("invalid amount: empty")
	}
	d, err := decimal.NewFromString(input)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", input, err)
	}
	return toUint64(d.Shift(shift), input)
}

func toUint64(d decimal.Decimal, input string) (uint64, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("invalid amount %q: negative", input)
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("invalid amount %q: finer than 1/%d", input, calc.Unit)
	}
	bi := d.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("invalid amount %q: out of range", input)
	}
	return bi.Uint64(), nil
}
