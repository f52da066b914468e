// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package count

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/zeebo/xxh3"
)

// Ballot is a formal ballot: preferences first to last, already expanded
// from any above-the-line marks. Papers is how many identical ballot papers
// the entry stands for; zero means one.
type Ballot struct {
	Prefs  []CandidateID
	Papers int64
}

type storedBallot struct {
	prefs  []int32 // roster slots
	papers int64
}

// BallotStore is the ordered, immutable collection of formal ballots for a
// count. Identical preference lists are kept once with their paper count.
// A store is bound to the roster it was validated against and is safe to
// share between concurrent counts.
type BallotStore struct {
	roster  *Roster
	ballots []storedBallot
	total   int64
}

// NewBallotStore validates ballots against roster and aggregates identical
// preference lists, keeping first-seen order.
func NewBallotStore(roster *Roster, ballots []Ballot) (*BallotStore, error) {
	if roster == nil {
		return nil, fmt.Errorf("%w: nil roster", ErrInvalidInput)
	}

	s := &BallotStore{roster: roster}
	buckets := make(map[uint64][]int)
	seen := make([]bool, roster.Len())
	var key []byte

	for i, b := range ballots {
		papers := b.Papers
		if papers == 0 {
			papers = 1
		}
		if papers < 0 {
			return nil, fmt.Errorf("%w: ballot %d has negative paper count", ErrInvalidInput, i)
		}
		if len(b.Prefs) == 0 {
			return nil, fmt.Errorf("%w: ballot %d has no preferences", ErrInvalidInput, i)
		}

		prefs := make([]int32, len(b.Prefs))
		clear(seen)
		for j, id := range b.Prefs {
			slot, ok := roster.slot(id)
			if !ok {
				return nil, fmt.Errorf("%w: ballot %d names unknown candidate %d", ErrInvalidInput, i, id)
			}
			if seen[slot] {
				return nil, fmt.Errorf("%w: ballot %d repeats candidate %d", ErrInvalidInput, i, id)
			}
			seen[slot] = true
			prefs[j] = int32(slot)
		}

		key = key[:0]
		for _, p := range prefs {
			key = binary.LittleEndian.AppendUint32(key, uint32(p))
		}
		h := xxh3.Hash(key)

		merged := false
		for _, idx := range buckets[h] {
			if slices.Equal(s.ballots[idx].prefs, prefs) {
				s.ballots[idx].papers += papers
				merged = true
				break
			}
		}
		if !merged {
			buckets[h] = append(buckets[h], len(s.ballots))
			s.ballots = append(s.ballots, storedBallot{prefs: prefs, papers: papers})
		}
		s.total += papers
	}

	if _, err := Votes(s.total); err != nil {
		return nil, err
	}
	return s, nil
}

// Roster returns the roster the ballots were validated against.
func (s *BallotStore) Roster() *Roster {
	return s.roster
}

// Total returns the number of formal ballot papers.
func (s *BallotStore) Total() int64 {
	return s.total
}

// Len returns the number of distinct preference lists.
func (s *BallotStore) Len() int {
	return len(s.ballots)
}

// Ballot returns the i-th distinct ballot.
func (s *BallotStore) Ballot(i int) Ballot {
	b := s.ballots[i]
	prefs := make([]CandidateID, len(b.prefs))
	for j, slot := range b.prefs {
		prefs[j] = s.roster.id(int(slot))
	}
	return Ballot{Prefs: prefs, Papers: b.papers}
}
