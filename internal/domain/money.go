package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits kept on every amount.
const AmountScale = 4

// TruncateAmount drops digits past AmountScale without rounding.
func TruncateAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Truncate(AmountScale)
}

// ValidateAmount truncates amount to AmountScale and requires the result to be positive.
func ValidateAmount(amount decimal.NullDecimal) (decimal.Decimal, error) {
	if !amount.Valid {
		return decimal.Zero, fmt.Errorf("%w: amount missing", ErrInvalidAmount)
	}

	truncated := TruncateAmount(amount.Decimal)
	if !truncated.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidAmount, amount.Decimal)
	}

	return truncated, nil
}

// ParseAmount parses an optional decimal field. Blank input is an absent amount.
func ParseAmount(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}

	return decimal.NewNullDecimal(d), nil
}
