package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in integer minor units (cents).
type Money int64

// NewMoney returns a pointer to m, handy for optional fields.
func NewMoney(m Money) *Money {
	return &m
}

// Major converts cents to the decimal major-unit value (dollars).
func (m Money) Major() float64 {
	return float64(m) / 100
}

// String formats m as a decimal with two fractional digits.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MoneyFromMajor converts a major-unit amount back to cents, rounding to the
// nearest cent.
func MoneyFromMajor(major float64) Money {
	return Money(math.Round(major * 100))
}

// ParseMoney parses a non-negative decimal string with at most two
// fractional digits, e.g. "12", "12.5" or "12.34".
func ParseMoney(s string) (Money, error) {
	whole, frac, hasFrac := strings.Cut(strings.TrimSpace(s), ".")
	if whole == "" || (hasFrac && (frac == "" || len(frac) > 2)) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	units, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	var cents uint64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		if cents, err = strconv.ParseUint(frac, 10, 8); err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}
	if units > math.MaxInt64/100-1 {
		return 0, fmt.Errorf("amount %q out of range", s)
	}
	return Money(units*100 + cents), nil
}
