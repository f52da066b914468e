// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/senate-recount/count"
)

// votes renders a value with thousands separators, e.g. "26,090.416666".
func votes(v count.Value) string {
	frac := int64(v) % int64(count.One)
	return fmt.Sprintf("%s.%06d", humanize.Comma(v.Whole()), frac)
}

func label(roster *count.Roster, id count.CandidateID) string {
	c, ok := roster.Candidate(id)
	if !ok {
		return fmt.Sprintf("#%d", id)
	}
	return c.Label()
}

func labels(roster *count.Roster, ids []count.CandidateID) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = label(roster, id)
	}
	return strings.Join(out, ", ")
}

func printSummary(w io.Writer, in *stateInput, res *count.Result) {
	fmt.Fprintf(w, "State: %s\n", in.election.State)
	fmt.Fprintf(w, "Candidates: %d\n", in.roster.Len())
	fmt.Fprintf(w, "Formal ballots: %s\n", humanize.Comma(res.TotalBallots))
	fmt.Fprintf(w, "Informal ballots: %s\n", humanize.Comma(in.stats.InformalTotal()))
	for _, r := range in.stats.Reasons() {
		fmt.Fprintf(w, "  %s: %s\n", r, humanize.Comma(in.stats.Informal[r]))
	}
	fmt.Fprintf(w, "Seats: %d\n", res.Seats)
	fmt.Fprintf(w, "Quota: %s\n", humanize.Comma(res.Quota))
	fmt.Fprintf(w, "Rounds: %d\n", len(res.Rounds))
	fmt.Fprintf(w, "Exhausted: %s (%s papers)\n", votes(res.Exhausted), humanize.Comma(res.ExhaustedPapers))
	fmt.Fprintf(w, "Lost by fraction: %s\n", votes(res.LostByFraction))
}

func printRounds(w io.Writer, roster *count.Roster, res *count.Result) {
	fmt.Fprintln(w, "=== Rounds ===")
	for _, r := range res.Rounds {
		fmt.Fprintf(w, "Round %d: %s %s\n", r.Number, r.Action, labels(roster, r.Candidates))
		if s := r.Surplus; s != nil {
			fmt.Fprintf(w, "  surplus %s at transfer value %s, %s lost by fraction\n",
				votes(s.Surplus), votes(s.TransferValue), votes(s.LostByFraction))
		}
		for _, tb := range r.TieBreaks {
			fmt.Fprintf(w, "  %s tie between %s settled by %s", tb.Kind, labels(roster, tb.Tied), tb.Method)
			if tb.Method == count.TieByHistory {
				fmt.Fprintf(w, " at round %d", tb.AtRound)
			} else {
				fmt.Fprintf(w, " with seed %d", tb.Seed)
			}
			fmt.Fprintf(w, ": %s\n", label(roster, tb.Chosen))
		}
		for _, t := range r.Tally {
			if t.Status != count.Hopeful {
				continue
			}
			fmt.Fprintf(w, "  %-40s %s\n", label(roster, t.Candidate), votes(t.Votes))
		}
		fmt.Fprintf(w, "  %-40s %s\n", "exhausted", votes(r.Exhausted))
	}
}

// printElected writes the elected list last so scripts can split on its
// heading.
func printElected(w io.Writer, roster *count.Roster, res *count.Result) {
	fmt.Fprintln(w, "=== Elected ===")
	for _, id := range res.Elected {
		fmt.Fprintln(w, label(roster, id))
	}
}
