// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package count

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewRoster(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Candidate
		wantErr    bool
	}{
		{"valid", []Candidate{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, false},
		{"sparse ids", []Candidate{{ID: 10, Name: "A"}, {ID: 3, Name: "B"}}, false},
		{"empty", nil, true},
		{"duplicate id", []Candidate{{ID: 1, Name: "A"}, {ID: 1, Name: "B"}}, true},
		{"negative id", []Candidate{{ID: -2, Name: "A"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoster(tt.candidates)
			if tt.wantErr && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestCandidateLabel(t *testing.T) {
	c := Candidate{ID: 1, Name: "Jane CITIZEN", Party: "Independent"}
	if got := c.Label(); got != "Jane CITIZEN (Independent)" {
		t.Errorf("Label() = %q", got)
	}
}

func TestNewBallotStoreRejectsInvalidBallots(t *testing.T) {
	roster, err := NewRoster([]Candidate{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}})
	if err != nil {
		t.Fatalf("NewRoster failed: %v", err)
	}

	tests := []struct {
		name   string
		ballot Ballot
	}{
		{"unknown candidate", Ballot{Prefs: []CandidateID{1, 9}}},
		{"repeated candidate", Ballot{Prefs: []CandidateID{2, 1, 2}}},
		{"empty", Ballot{}},
		{"negative papers", Ballot{Prefs: []CandidateID{1}, Papers: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBallotStore(roster, []Ballot{{Prefs: []CandidateID{1}}, tt.ballot})
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestBallotStoreAggregatesIdenticalLists(t *testing.T) {
	roster, err := NewRoster([]Candidate{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}})
	if err != nil {
		t.Fatalf("NewRoster failed: %v", err)
	}

	store, err := NewBallotStore(roster, []Ballot{
		{Prefs: []CandidateID{1, 2}},
		{Prefs: []CandidateID{2, 1}},
		{Prefs: []CandidateID{1, 2}, Papers: 4},
		{Prefs: []CandidateID{1}},
		{Prefs: []CandidateID{2, 1}},
	})
	if err != nil {
		t.Fatalf("NewBallotStore failed: %v", err)
	}

	if store.Total() != 8 {
		t.Errorf("Expected 8 papers, got %d", store.Total())
	}
	if store.Len() != 3 {
		t.Fatalf("Expected 3 distinct lists, got %d", store.Len())
	}
	want := []Ballot{
		{Prefs: []CandidateID{1, 2}, Papers: 5},
		{Prefs: []CandidateID{2, 1}, Papers: 2},
		{Prefs: []CandidateID{1}, Papers: 1},
	}
	for i, w := range want {
		if got := store.Ballot(i); !reflect.DeepEqual(got, w) {
			t.Errorf("Ballot(%d) = %+v, want %+v", i, got, w)
		}
	}
}

func TestDigest(t *testing.T) {
	build := func(a Candidate, ballots ...Ballot) *BallotStore {
		a.ID = 1
		roster, err := NewRoster([]Candidate{a, {ID: 2, Name: "B", Position: 2}})
		if err != nil {
			t.Fatalf("NewRoster failed: %v", err)
		}
		store, err := NewBallotStore(roster, ballots)
		if err != nil {
			t.Fatalf("NewBallotStore failed: %v", err)
		}
		return store
	}
	ballots := []Ballot{{Prefs: []CandidateID{1, 2}, Papers: 2}, {Prefs: []CandidateID{2}}}
	a := Candidate{Name: "A", Party: "X", Group: "A", Position: 1}

	d := Digest(build(a, ballots...))
	if len(d) != 64 {
		t.Errorf("Expected a hex sha256 digest, got %q", d)
	}

	split := build(a,
		Ballot{Prefs: []CandidateID{1, 2}},
		Ballot{Prefs: []CandidateID{1, 2}},
		Ballot{Prefs: []CandidateID{2}},
	)
	if Digest(split) != d {
		t.Error("Aggregated and unaggregated inputs should share a digest")
	}

	tests := []struct {
		name    string
		a       Candidate
		ballots []Ballot
	}{
		{"party", Candidate{Name: "A", Party: "Y", Group: "A", Position: 1}, ballots},
		{"group", Candidate{Name: "A", Party: "X", Group: "B", Position: 1}, ballots},
		{"ungrouped", Candidate{Name: "A", Party: "X", Position: 1}, ballots},
		{"position", Candidate{Name: "A", Party: "X", Group: "A", Position: 3}, ballots},
		{"name", Candidate{Name: "AA", Party: "X", Group: "A", Position: 1}, ballots},
		{"paper count", a, []Ballot{{Prefs: []CandidateID{1, 2}, Papers: 3}, {Prefs: []CandidateID{2}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if Digest(build(tt.a, tt.ballots...)) == d {
				t.Errorf("A different %s should change the digest", tt.name)
			}
		})
	}
}
