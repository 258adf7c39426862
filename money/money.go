// Package money provides decimal amount parsing and rendering for the engine.
//
// Amounts are non-negative fixed-precision decimals. Report output uses a
// fixed four-digit fractional scale regardless of input precision.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// reportScale is the number of fractional digits rendered in report output.
const reportScale = 4

// ErrEmptyAmount is returned when an amount field is empty or blank.
var ErrEmptyAmount = errors.New("amount is empty")

// ErrNegativeAmount is returned when an amount parses to a negative value.
var ErrNegativeAmount = errors.New("amount is negative")

// Parse parses an amount field into a non-negative decimal.
//
// Example:
//
//	amount, err := money.Parse(record.Amount)
//	if err != nil {
//	    return fmt.Errorf("parse amount: %w", err)
//	}
func Parse(s string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Zero, ErrEmptyAmount
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}

	return d, nil
}

// Format renders d with the fixed report scale.
func Format(d decimal.Decimal) string {
	return d.StringFixed(reportScale)
}
