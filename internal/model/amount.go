package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Exponent bounds for amounts. Rendering a decimal costs time proportional to
// its exponent, so "1e100000000" must never get into the collection.
const (
	MinAmountExponent = -10
	MaxAmountExponent = 15
)

// ErrAmountOutOfRange is returned for amounts whose exponent is outside
// [MinAmountExponent, MaxAmountExponent].
var ErrAmountOutOfRange = errors.New("amount out of range")

// ParseAmount parses a plain decimal amount ("4.50", "-3", "1e3").
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if exp := d.Exponent(); exp < MinAmountExponent || exp > MaxAmountExponent {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, ErrAmountOutOfRange)
	}
	return d, nil
}
