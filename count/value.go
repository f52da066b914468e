// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package count

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
)

// Decimals is the number of decimal places kept for transfer values and
// vote totals. Anything below it is truncated, never rounded.
const Decimals = 6

const valueScale = 1_000_000

// Value is a non-negative vote quantity in fixed point with six decimal
// places. One whole vote is One.
type Value int64

const One Value = valueScale

// Votes converts a whole number of votes (or ballot papers) to a Value.
func Votes(n int64) (Value, error) {
	return scaleBy(n, One)
}

// Whole returns the integer part of v.
func (v Value) Whole() int64 {
	return int64(v) / valueScale
}

// Float64 is for display only; counting never goes through floats.
func (v Value) Float64() float64 {
	return float64(v) / valueScale
}

// String formats v with all six decimal places, e.g. "41.666660".
func (v Value) String() string {
	sign := ""
	n := int64(v)
	if n < 0 {
		sign = "-"
		n = -n
	}
	return fmt.Sprintf("%s%d.%06d", sign, n/valueScale, n%valueScale)
}

// ParseValue reads a decimal string such as "5", "0.416666" or "12.5".
// Digits beyond the sixth decimal place are truncated.
func ParseValue(s string) (Value, error) {
	if s == "" || s == "." {
		return 0, fmt.Errorf("%w: bad value %q", ErrInvalidInput, s)
	}
	whole, frac := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			whole, frac = s[:i], s[i+1:]
			break
		}
	}
	if whole == "" {
		whole = "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w < 0 {
		return 0, fmt.Errorf("%w: bad value %q", ErrInvalidInput, s)
	}
	if len(frac) > Decimals {
		frac = frac[:Decimals]
	}
	for len(frac) < Decimals {
		frac += "0"
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("%w: bad value %q", ErrInvalidInput, s)
	}
	v, err := scaleBy(w, One)
	if err != nil {
		return 0, err
	}
	return addValues(v, Value(f))
}

// scaleBy returns papers × v, failing instead of wrapping on overflow.
func scaleBy(papers int64, v Value) (Value, error) {
	if papers < 0 || v < 0 {
		return 0, fmt.Errorf("%w: negative operand", ErrPrecisionExceeded)
	}
	hi, lo := bits.Mul64(uint64(papers), uint64(v))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d × %s", ErrPrecisionExceeded, papers, v)
	}
	return Value(lo), nil
}

// mulTrunc returns a × b truncated to six decimal places.
func mulTrunc(a, b Value) (Value, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("%w: negative operand", ErrPrecisionExceeded)
	}
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi >= valueScale {
		return 0, fmt.Errorf("%w: %s × %s", ErrPrecisionExceeded, a, b)
	}
	q, _ := bits.Div64(hi, lo, valueScale)
	if q > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %s × %s", ErrPrecisionExceeded, a, b)
	}
	return Value(q), nil
}

// ratioTrunc returns num / den truncated to six decimal places.
func ratioTrunc(num, den Value) (Value, error) {
	if num < 0 || den <= 0 {
		return 0, fmt.Errorf("%w: ratio %s / %s", ErrPrecisionExceeded, num, den)
	}
	hi, lo := bits.Mul64(uint64(num), valueScale)
	if hi >= uint64(den) {
		return 0, fmt.Errorf("%w: ratio %s / %s", ErrPrecisionExceeded, num, den)
	}
	q, _ := bits.Div64(hi, lo, uint64(den))
	if q > math.MaxInt64 {
		return 0, fmt.Errorf("%w: ratio %s / %s", ErrPrecisionExceeded, num, den)
	}
	return Value(q), nil
}

func addValues(a, b Value) (Value, error) {
	s := a + b
	if (b > 0 && s < a) || (b < 0 && s > a) {
		return 0, fmt.Errorf("%w: %s + %s", ErrPrecisionExceeded, a, b)
	}
	return s, nil
}
