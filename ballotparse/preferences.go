// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballotparse

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/danielhkuo/senate-recount/count"
)

// Choice decides between a ballot that is formal both above and below the
// line.
type Choice int

const (
	// Strict treats such a ballot as informal.
	Strict Choice = iota
	// PreferAbove counts the above-the-line preferences.
	PreferAbove
	// PreferBelow counts the below-the-line preferences, as s269(2) of the
	// Electoral Act requires.
	PreferBelow
)

// ParseChoice reads "strict", "above" or "below".
func ParseChoice(s string) (Choice, error) {
	switch strings.ToLower(s) {
	case "strict":
		return Strict, nil
	case "above":
		return PreferAbove, nil
	case "below":
		return PreferBelow, nil
	}
	return 0, fmt.Errorf("unknown choice %q (want strict, above or below)", s)
}

func (c Choice) String() string {
	switch c {
	case Strict:
		return "strict"
	case PreferAbove:
		return "above"
	case PreferBelow:
		return "below"
	default:
		return "unknown"
	}
}

// Limit is a bound on the number of preferences left after cleanup.
type Limit int

const (
	MinAbove Limit = iota
	MaxAbove
	MinBelow
	MaxBelow
)

// CountConstraint bounds how many preferences one side of the line holds.
type CountConstraint struct {
	Limit Limit
	N     int
}

// Constraints are the formality rules applied to every ballot.
type Constraints struct {
	Choice Choice
	Counts []CountConstraint
}

// Official returns the savings provisions used by the AEC: at least one box
// above the line or six below, with below the line preferred.
func Official() Constraints {
	return Constraints{
		Choice: PreferBelow,
		Counts: []CountConstraint{{MinAbove, 1}, {MinBelow, 6}},
	}
}

func (c Constraints) check(above bool, n int) error {
	for _, cc := range c.Counts {
		var err error
		switch {
		case above && cc.Limit == MinAbove && n < cc.N:
			err = ErrMinAbove
		case above && cc.Limit == MaxAbove && n > cc.N:
			err = ErrMaxAbove
		case !above && cc.Limit == MinBelow && n < cc.N:
			err = ErrMinBelow
		case !above && cc.Limit == MaxBelow && n > cc.N:
			err = ErrMaxBelow
		}
		if err != nil {
			return fmt.Errorf("%w: %d marked, limit %d", err, n, cc.N)
		}
	}
	return nil
}

// ParsePreferences turns one ballot's comma-separated preference string into
// an ordered preference list. The first len(e.Groups) fields are the boxes
// above the line; the rest are the candidates below it, in ballot-paper
// order.
func ParsePreferences(pref string, e *Election, c Constraints) ([]count.CandidateID, error) {
	fields := strings.Split(pref, ",")
	if len(fields) > len(e.Groups)+len(e.Candidates) {
		return nil, ErrFieldCount
	}
	aboveFields := fields[:min(len(fields), len(e.Groups))]
	belowFields := fields[len(aboveFields):]

	above, aboveErr := sequence(aboveFields)
	if aboveErr == nil {
		aboveErr = c.check(true, len(above))
	}
	below, belowErr := sequence(belowFields)
	if belowErr == nil {
		belowErr = c.check(false, len(below))
	}

	useAbove := false
	switch {
	case aboveErr == nil && belowErr != nil:
		useAbove = true
	case aboveErr != nil && belowErr == nil:
		useAbove = false
	case aboveErr != nil && belowErr != nil:
		return nil, aboveErr
	case c.Choice == Strict:
		return nil, ErrStrict
	default:
		useAbove = c.Choice == PreferAbove
	}

	var out []count.CandidateID
	if useAbove {
		for _, box := range above {
			out = append(out, e.Groups[box].Candidates...)
		}
		return out, nil
	}
	for _, box := range below {
		out = append(out, e.Candidates[box].ID)
	}
	return out, nil
}

// sequence returns the field indexes in preference order. A number marked
// twice ends the sequence before that number, as does the first number
// missing from 1, 2, 3, ...
func sequence(fields []string) ([]int, error) {
	type mark struct{ pref, field int }
	var marks []mark
	cutoff := -1
	seen := make(map[int]bool)

	for i, raw := range fields {
		var pref int
		switch raw {
		case "":
			continue
		case "*", "/":
			pref = 1
		default:
			n, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return nil, ErrInvalidCharacter
			}
			pref = int(n)
		}
		if seen[pref] {
			if cutoff < 0 || pref < cutoff {
				cutoff = pref
			}
			continue
		}
		seen[pref] = true
		marks = append(marks, mark{pref, i})
	}

	slices.SortFunc(marks, func(a, b mark) int { return a.pref - b.pref })
	var out []int
	for i, m := range marks {
		if m.pref != i+1 || (cutoff >= 0 && m.pref >= cutoff) {
			break
		}
		out = append(out, m.field)
	}
	if len(out) == 0 {
		return nil, ErrEmptyBallot
	}
	return out, nil
}
