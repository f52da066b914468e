// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package count

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrDeadlocked        = errors.New("count deadlocked")
	ErrPrecisionExceeded = errors.New("vote arithmetic exceeds fixed-point range")
)

// DeadlockError reports the round at which the remaining hopeful candidates
// could no longer fill the remaining seats.
type DeadlockError struct {
	Round    int
	Hopeful  int
	Unfilled int
}

func (e *DeadlockError) Error() string {
	return fmt.Sprintf("count deadlocked at round %d: %d hopeful candidates for %d unfilled seats",
		e.Round, e.Hopeful, e.Unfilled)
}

func (e *DeadlockError) Unwrap() error {
	return ErrDeadlocked
}
