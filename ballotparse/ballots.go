// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballotparse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/danielhkuo/senate-recount/count"
)

// Stats counts what ReadBallots did with each row.
type Stats struct {
	Formal   int64
	Informal map[error]int64 // keyed by the sentinel errors of this package
}

// InformalTotal returns the number of ballots left out of the count.
func (s Stats) InformalTotal() int64 {
	var n int64
	for _, v := range s.Informal {
		n += v
	}
	return n
}

// Reasons returns the informal reasons seen, in a fixed order.
func (s Stats) Reasons() []error {
	var out []error
	for _, r := range informalReasons {
		if s.Informal[r] > 0 {
			out = append(out, r)
		}
	}
	return out
}

// ReadBallots reads an AEC formal preferences file: a header row naming a
// Preferences column, an optional row of dashes, then one row per ballot
// paper. Informal ballots are skipped and tallied; a malformed file stops
// the read.
func ReadBallots(r io.Reader, e *Election, c Constraints) ([]count.Ballot, Stats, error) {
	stats := Stats{Informal: make(map[error]int64)}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, stats, fmt.Errorf("%w: preference header: %v", ErrMalformed, err)
	}
	cols, err := columnIndex(header, "Preferences")
	if err != nil {
		return nil, stats, err
	}
	col := cols["Preferences"]

	var ballots []count.Ballot
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("%w: preferences: %v", ErrMalformed, err)
		}
		if len(rec) > 0 && strings.HasPrefix(rec[0], "---") {
			continue
		}
		if col >= len(rec) {
			return nil, stats, fmt.Errorf("%w: row has no Preferences field", ErrMalformed)
		}

		prefs, err := ParsePreferences(rec[col], e, c)
		if err != nil {
			stats.Informal[Reason(err)]++
			continue
		}
		stats.Formal++
		ballots = append(ballots, count.Ballot{Prefs: prefs, Papers: 1})
	}
	return ballots, stats, nil
}
