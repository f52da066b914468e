// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package count

import "fmt"

// Quota computes the Droop quota, floor(total / (seats + 1)) + 1.
func Quota(totalBallots int64, seats, candidates int) (int64, error) {
	if seats <= 0 {
		return 0, fmt.Errorf("%w: seats must be positive, got %d", ErrInvalidInput, seats)
	}
	if seats > candidates {
		return 0, fmt.Errorf("%w: %d seats but only %d candidates", ErrInvalidInput, seats, candidates)
	}
	if totalBallots <= 0 {
		return 0, fmt.Errorf("%w: no formal ballots", ErrInvalidInput)
	}
	return totalBallots/int64(seats+1) + 1, nil
}
