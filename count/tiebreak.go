// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package count

import (
	"math/rand/v2"
	"slices"
)

// TieKind says which decision a tie blocked.
type TieKind string

const (
	TieElection  TieKind = "election"
	TieExclusion TieKind = "exclusion"
)

// TieMethod says how a tie was settled.
type TieMethod string

const (
	// TieByHistory settled the tie on totals at an earlier round.
	TieByHistory TieMethod = "history"
	// TieByDraw settled the tie with the seeded draw.
	TieByDraw TieMethod = "draw"
)

// TieBreak records one resolved tie.
type TieBreak struct {
	Kind    TieKind
	Tied    []CandidateID
	Method  TieMethod
	AtRound int // round whose totals decided it; 0 means first preferences, -1 a draw
	Seed    uint64
	Chosen  CandidateID
}

// resolver settles ties by walking back through earlier totals and, when
// they never differ, by a draw from a generator seeded once per count.
type resolver struct {
	seed uint64
	rng  *rand.Rand
}

func newResolver(seed uint64) *resolver {
	return &resolver{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// resolve picks one slot from tied. history[k] holds every candidate's total
// at the end of round k, with history[0] the first preferences; the tie was
// found on the last entry, so the walk starts one before it. Exclusion keeps
// the lowest earlier totals, election the highest.
func (r *resolver) resolve(kind TieKind, tied []int, history [][]Value, roster *Roster) (int, TieBreak) {
	tb := TieBreak{Kind: kind, Seed: r.seed, AtRound: -1}
	for _, slot := range tied {
		tb.Tied = append(tb.Tied, roster.id(slot))
	}
	slices.Sort(tb.Tied)

	remaining := slices.Clone(tied)
	for k := len(history) - 2; k >= 0 && len(remaining) > 1; k-- {
		totals := history[k]
		best := totals[remaining[0]]
		for _, slot := range remaining[1:] {
			v := totals[slot]
			if (kind == TieExclusion && v < best) || (kind == TieElection && v > best) {
				best = v
			}
		}
		narrowed := remaining[:0:0]
		for _, slot := range remaining {
			if totals[slot] == best {
				narrowed = append(narrowed, slot)
			}
		}
		if len(narrowed) < len(remaining) {
			remaining = narrowed
			tb.AtRound = k
		}
	}

	if len(remaining) == 1 {
		tb.Method = TieByHistory
		tb.Chosen = roster.id(remaining[0])
		return remaining[0], tb
	}

	slices.SortFunc(remaining, func(a, b int) int {
		return int(roster.id(a)) - int(roster.id(b))
	})
	pick := remaining[r.rng.IntN(len(remaining))]
	tb.Method = TieByDraw
	tb.AtRound = -1
	tb.Chosen = roster.id(pick)
	return pick, tb
}
