// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package count

import "sort"

// Parcel is a batch of ballots that share a transfer value and an origin.
// Parcels are only ever created and handed on whole; a candidate's vote
// total is the sum over its parcels of Papers × Value.
type Parcel struct {
	Round  int         // round the parcel arrived at its holder
	From   CandidateID // NoCandidate for first preferences
	Value  Value
	Papers int64

	entries []heldBallot
}

// heldBallot is a ballot in a parcel together with the position of the
// preference that placed it with the current holder.
type heldBallot struct {
	ballot int32
	pos    int32
}

// Votes returns Papers × Value.
func (p *Parcel) Votes() (Value, error) {
	return scaleBy(p.Papers, p.Value)
}

// Transfer summarises the ballots one move delivered to a single
// destination at a single value.
type Transfer struct {
	From   CandidateID
	To     CandidateID // NoCandidate when the ballots exhausted
	Value  Value
	Papers int64
	Votes  Value
}

// holdings is the per-count, mutable assignment of parcels to candidates.
// The ballots it points into are shared and never modified.
type holdings struct {
	store   *BallotStore
	parcels [][]*Parcel
}

func newHoldings(store *BallotStore) *holdings {
	n := store.roster.Len()
	h := &holdings{store: store, parcels: make([][]*Parcel, n)}

	first := make([]*Parcel, n)
	for i, b := range store.ballots {
		slot := b.prefs[0]
		p := first[slot]
		if p == nil {
			p = &Parcel{Round: 1, From: NoCandidate, Value: One}
			first[slot] = p
		}
		p.entries = append(p.entries, heldBallot{ballot: int32(i)})
		p.Papers += b.papers
	}
	for slot, p := range first {
		if p != nil {
			h.parcels[slot] = []*Parcel{p}
		}
	}
	return h
}

// total sums the votes in every parcel a candidate holds.
func (h *holdings) total(slot int) (Value, error) {
	var sum Value
	for _, p := range h.parcels[slot] {
		v, err := p.Votes()
		if err != nil {
			return 0, err
		}
		if sum, err = addValues(sum, v); err != nil {
			return 0, err
		}
	}
	return sum, nil
}

type moveResult struct {
	transfers       []Transfer
	moved           Value // delivered to candidates plus exhausted
	exhausted       Value
	exhaustedPapers int64
}

type moveKey struct {
	dest  int // -1 for exhausted
	value Value
}

// move hands every parcel held by from onward. Each ballot is walked on its
// own past candidates that are no longer hopeful; ballots with no hopeful
// preference left exhaust. valueOf gives the value a parcel travels at.
// Ballots arriving at the same destination at the same value form one new
// parcel tagged with round.
func (h *holdings) move(from, round int, hopeful []bool, valueOf func(*Parcel) (Value, error)) (moveResult, error) {
	var res moveResult
	fromID := h.store.roster.id(from)

	out := make(map[moveKey]*Parcel)
	var keys []moveKey
	byDest := make([]*Parcel, len(hopeful)+1) // last slot is the exhausted pile

	for _, p := range h.parcels[from] {
		v, err := valueOf(p)
		if err != nil {
			return res, err
		}

		clear(byDest)
		for _, e := range p.entries {
			b := &h.store.ballots[e.ballot]
			dest := -1
			pos := e.pos + 1
			for ; int(pos) < len(b.prefs); pos++ {
				if hopeful[b.prefs[pos]] {
					dest = int(b.prefs[pos])
					break
				}
			}

			idx := dest
			if dest < 0 {
				idx = len(hopeful)
			}
			np := byDest[idx]
			if np == nil {
				np = &Parcel{Round: round, From: fromID, Value: v}
				byDest[idx] = np
			}
			if dest >= 0 {
				np.entries = append(np.entries, heldBallot{ballot: e.ballot, pos: pos})
			}
			np.Papers += b.papers
		}

		for idx, np := range byDest {
			if np == nil {
				continue
			}
			k := moveKey{dest: idx, value: v}
			if idx == len(hopeful) {
				k.dest = -1
			}
			if prev, ok := out[k]; ok {
				prev.entries = append(prev.entries, np.entries...)
				prev.Papers += np.Papers
				continue
			}
			out[k] = np
			keys = append(keys, k)
		}
	}
	h.parcels[from] = nil

	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.dest != b.dest {
			// exhausted pile last
			if a.dest < 0 || b.dest < 0 {
				return b.dest < 0
			}
			return a.dest < b.dest
		}
		return a.value > b.value
	})

	for _, k := range keys {
		np := out[k]
		votes, err := np.Votes()
		if err != nil {
			return res, err
		}
		if res.moved, err = addValues(res.moved, votes); err != nil {
			return res, err
		}

		t := Transfer{From: fromID, To: NoCandidate, Value: k.value, Papers: np.Papers, Votes: votes}
		if k.dest < 0 {
			if res.exhausted, err = addValues(res.exhausted, votes); err != nil {
				return res, err
			}
			res.exhaustedPapers += np.Papers
		} else {
			t.To = h.store.roster.id(k.dest)
			h.parcels[k.dest] = append(h.parcels[k.dest], np)
		}
		res.transfers = append(res.transfers, t)
	}
	return res, nil
}
