// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package count

import (
	"errors"
	"math"
	"testing"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{0, "0.000000"},
		{One, "1.000000"},
		{416666, "0.416666"},
		{2499996, "2.499996"},
		{7*One + 1, "7.000001"},
	}

	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("Value(%d).String() = %q, want %q", int64(tt.v), got, tt.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in      string
		want    Value
		wantErr bool
	}{
		{"5", 5 * One, false},
		{"0.416666", 416666, false},
		{"2.5", 2500000, false},
		{".5", 500000, false},
		{"1.2345678", 1234567, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-1", 0, true},
		{"1.x", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseValue(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got %s", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseValue(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseValue(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncatingArithmetic(t *testing.T) {
	tv, err := ratioTrunc(5*One, 12*One)
	if err != nil {
		t.Fatalf("ratioTrunc failed: %v", err)
	}
	if tv != 416666 {
		t.Errorf("5/12 = %s, want 0.416666", tv)
	}

	half, err := mulTrunc(tv, One/2)
	if err != nil {
		t.Fatalf("mulTrunc failed: %v", err)
	}
	if half != 208333 {
		t.Errorf("0.416666 × 0.5 = %s, want 0.208333", half)
	}

	six, err := scaleBy(6, tv)
	if err != nil {
		t.Fatalf("scaleBy failed: %v", err)
	}
	if six != 2499996 {
		t.Errorf("6 × 0.416666 = %s, want 2.499996", six)
	}

	got, err := TransferValue(5*One, 12*One)
	if err != nil || got != tv {
		t.Errorf("TransferValue(5, 12) = %s, %v; want 0.416666", got, err)
	}
}

func TestArithmeticOverflow(t *testing.T) {
	if _, err := Votes(math.MaxInt64 / 10); !errors.Is(err, ErrPrecisionExceeded) {
		t.Errorf("Votes: expected ErrPrecisionExceeded, got %v", err)
	}
	if _, err := scaleBy(math.MaxInt64/2, One); !errors.Is(err, ErrPrecisionExceeded) {
		t.Errorf("scaleBy: expected ErrPrecisionExceeded, got %v", err)
	}
	if _, err := mulTrunc(math.MaxInt64, math.MaxInt64); !errors.Is(err, ErrPrecisionExceeded) {
		t.Errorf("mulTrunc: expected ErrPrecisionExceeded, got %v", err)
	}
	if _, err := ratioTrunc(math.MaxInt64, 1); !errors.Is(err, ErrPrecisionExceeded) {
		t.Errorf("ratioTrunc: expected ErrPrecisionExceeded, got %v", err)
	}
	if _, err := addValues(math.MaxInt64, 1); !errors.Is(err, ErrPrecisionExceeded) {
		t.Errorf("addValues: expected ErrPrecisionExceeded, got %v", err)
	}
}

func TestQuota(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		seats      int
		candidates int
		want       int64
		wantErr    bool
	}{
		{"single seat", 10, 1, 3, 6, false},
		{"two seats", 20, 2, 4, 7, false},
		{"half senate", 4_000_000, 6, 80, 571_429, false},
		{"exact division", 21, 2, 3, 8, false},
		{"no seats", 10, 0, 3, 0, true},
		{"too many seats", 10, 4, 3, 0, true},
		{"no ballots", 0, 1, 3, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quota(tt.total, tt.seats, tt.candidates)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Errorf("Expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Quota failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Quota(%d, %d) = %d, want %d", tt.total, tt.seats, got, tt.want)
			}
		})
	}
}
