// Package helpers provides common utility functions used across the codebase.
package helpers

import (
	"fmt"
	"math/big"
	"strings"
)

// FormatAmount formats an amount in smallest units as a decimal string.
// For example, FormatAmount(100000000, 8) returns "1" (1 BTC).
func FormatAmount(amount uint64, decimals uint8) string {
	if decimals == 0 {
		return fmt.Sprintf("%d", amount)
	}

	amountBig := new(big.Int).SetUint64(amount)
	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)

	whole := new(big.Int).Div(amountBig, divisor)
	frac := new(big.Int).Mod(amountBig, divisor)

	if frac.Sign() == 0 {
		return whole.String()
	}

	fracStr := fmt.Sprintf("%0*d", int(decimals), frac)
	// Trim trailing zeros
	for len(fracStr) > 0 && fracStr[len(fracStr)-1] == '0' {
		fracStr = fracStr[:len(fracStr)-1]
	}

	return fmt.Sprintf("%s.%s", whole.String(), fracStr)
}

// ParseAmount parses a decimal string to smallest units.
// For example, ParseAmount("1", 8) returns 100000000 (1 BTC in satoshis).
func ParseAmount(s string, decimals uint8) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty amount string")
	}

	wholeStr := s
	fracStr := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		wholeStr = s[:i]
		fracStr = s[i+1:]
	}
	if wholeStr == "" {
		wholeStr = "0"
	}
	if len(fracStr) > int(decimals) {
		return 0, fmt.Errorf("too many decimal places: %s", s)
	}

	// Pad fractional part to full precision
	fracStr += strings.Repeat("0", int(decimals)-len(fracStr))

	whole, ok := new(big.Int).SetString(wholeStr, 10)
	if !ok || whole.Sign() < 0 {
		return 0, fmt.Errorf("invalid amount: %s", s)
	}

	result := new(big.Int).Mul(whole, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	if fracStr != "" {
		frac, ok := new(big.Int).SetString(fracStr, 10)
		if !ok || frac.Sign() < 0 {
			return 0, fmt.Errorf("invalid amount: %s", s)
		}
		result.Add(result, frac)
	}

	if !result.IsUint64() {
		return 0, fmt.Errorf("amount out of range: %s", s)
	}
	return result.Uint64(), nil
}
