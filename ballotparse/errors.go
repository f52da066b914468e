// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballotparse

import "errors"

// Informal ballot reasons. A ballot that fails with one of these is left out
// of the count and tallied in Stats.
var (
	ErrInvalidCharacter = errors.New("invalid character in preferences")
	ErrEmptyBallot      = errors.New("no valid preferences")
	ErrFieldCount       = errors.New("more preference fields than boxes")
	ErrMinAbove         = errors.New("too few preferences above the line")
	ErrMaxAbove         = errors.New("too many preferences above the line")
	ErrMinBelow         = errors.New("too few preferences below the line")
	ErrMaxBelow         = errors.New("too many preferences below the line")
	ErrStrict           = errors.New("valid both above and below the line")
)

// ErrMalformed marks input files that cannot be read at all.
var ErrMalformed = errors.New("malformed input")

// informalReasons lists every sentinel Stats tallies, in report order.
var informalReasons = []error{
	ErrInvalidCharacter,
	ErrEmptyBallot,
	ErrFieldCount,
	ErrMinAbove,
	ErrMaxAbove,
	ErrMinBelow,
	ErrMaxBelow,
	ErrStrict,
}

// Reason returns the informal-ballot sentinel err wraps, or nil if it wraps
// none of them.
func Reason(err error) error {
	for _, r := range informalReasons {
		if errors.Is(err, r) {
			return r
		}
	}
	return nil
}
