// Package core holds the domain model shared by every service: transactions,
// budgets, goals, reports and the exact-decimal money representation.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is an exact decimal amount stored as integer cents. All arithmetic in
// the system happens on cents so that aggregate sums never accumulate binary
// floating-point error.
type Money struct {
	Cents int64
}

// CentsOf builds a Money value from integer cents.
func CentsOf(cents int64) Money {
	return Money{Cents: cents}
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Sub returns the difference of two amounts.
func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Cents == 0
}

// Format renders the amount with exactly two decimals, e.g. "8000.00".
func (m Money) Format() string {
	c := m.Cents
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// String implements fmt.Stringer.
func (m Money) String() string {
	return m.Format()
}

// Float64 returns the amount as a float for display or ratio comparisons.
// Use cents for anything that gets stored or summed.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100.0
}

// ParseMoney converts a decimal string to an exact amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// performs half-up rounding on the third decimal place. Only positive
// amounts are accepted; signs, empty input and malformed digits return
// a validation error.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, &ValidationError{Reason: "amount is required"}
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, &ValidationError{Reason: "amount must be a positive decimal"}
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, &ValidationError{Reason: "amount is not a valid decimal"}
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Money{}, &ValidationError{Reason: "amount is not a valid decimal"}
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, &ValidationError{Reason: "amount is not a valid decimal"}
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, &ValidationError{Reason: "amount is out of range"}
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return Money{}, &ValidationError{Reason: "amount is out of range"}
	}
	// First two fractional digits are cents; half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return Money{}, &ValidationError{Reason: "amount must be greater than zero"}
	}
	return Money{Cents: cents}, nil
}
