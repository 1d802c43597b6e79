package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a decimal amount or multiplier such as "1.5".
func ParseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount is empty")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount[%s] is not valid: %w", s, err)
	}

	return amount, nil
}

// scale multiplies a recipe amount for expansion. Zero and negative
// multipliers are accepted as given.
func scale(amount, multiplier decimal.Decimal) decimal.Decimal {
	return amount.Mul(multiplier)
}
