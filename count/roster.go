// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package count

import (
	"fmt"
	"strings"
)

// CandidateID is the stable identifier ingestion assigns to a candidate.
// Identifiers are non-negative.
type CandidateID int

// NoCandidate marks parcels that have not come from any candidate (first
// preferences) and transfers that went to the exhausted pile.
const NoCandidate CandidateID = -1

// Candidate is one entry on the ballot paper.
type Candidate struct {
	ID       CandidateID
	Name     string
	Party    string
	Group    string // ticket letter, "UG" when ungrouped
	Position int    // declared ballot-paper order, 1-based
}

// Label renders a candidate the way results are printed: "Name (Party)".
func (c Candidate) Label() string {
	if c.Party == "" {
		return c.Name
	}
	return c.Name + " (" + c.Party + ")"
}

// Roster is the immutable candidate registry for a count. It is safe to
// share between concurrent counts.
type Roster struct {
	candidates []Candidate
	slots      map[CandidateID]int
}

// NewRoster validates and indexes candidates. Order is preserved and is the
// order every per-candidate slice in a Result follows.
func NewRoster(candidates []Candidate) (*Roster, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: roster has no candidates", ErrInvalidInput)
	}

	r := &Roster{
		candidates: make([]Candidate, len(candidates)),
		slots:      make(map[CandidateID]int, len(candidates)),
	}
	for i, c := range candidates {
		if c.ID < 0 {
			return nil, fmt.Errorf("%w: candidate %q has negative id %d", ErrInvalidInput, c.Name, c.ID)
		}
		if _, dup := r.slots[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate candidate id %d", ErrInvalidInput, c.ID)
		}
		c.Name = strings.TrimSpace(c.Name)
		r.candidates[i] = c
		r.slots[c.ID] = i
	}
	return r, nil
}

// Len returns the number of candidates standing.
func (r *Roster) Len() int {
	return len(r.candidates)
}

// Candidates returns a copy of the roster in declared order.
func (r *Roster) Candidates() []Candidate {
	out := make([]Candidate, len(r.candidates))
	copy(out, r.candidates)
	return out
}

// Candidate looks a candidate up by id.
func (r *Roster) Candidate(id CandidateID) (Candidate, bool) {
	i, ok := r.slots[id]
	if !ok {
		return Candidate{}, false
	}
	return r.candidates[i], true
}

func (r *Roster) slot(id CandidateID) (int, bool) {
	i, ok := r.slots[id]
	return i, ok
}

func (r *Roster) id(slot int) CandidateID {
	return r.candidates[slot].ID
}
