// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballotparse

import (
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/danielhkuo/senate-recount/count"
)

// Ungrouped is the ticket of candidates with no box above the line.
const Ungrouped = "UG"

// Group is a ticket with a box above the line. Its candidates are listed in
// ballot-paper order, which is the order an above-the-line mark expands to.
type Group struct {
	Ticket     string
	Candidates []count.CandidateID
}

// Election is one state's Senate ballot paper.
type Election struct {
	State      string
	Candidates []count.Candidate // ballot-paper order; below-the-line field order
	Groups     []Group           // above-the-line field order
}

// Roster builds the count roster for the election.
func (e *Election) Roster() (*count.Roster, error) {
	return count.NewRoster(e.Candidates)
}

var candidateColumns = []string{
	"nom_ty", "state_ab", "ticket", "ballot_position", "surname", "ballot_given_nm", "party_ballot_nm",
}

// ReadCandidates reads the AEC candidate list and returns the Senate ballot
// paper for state. Candidates are ordered by ticket (A..Z, AA.., ungrouped
// last) and then ballot position, and numbered from 1 in that order.
func ReadCandidates(r io.Reader, state string) (*Election, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: candidate header: %v", ErrMalformed, err)
	}
	cols, err := columnIndex(header, candidateColumns...)
	if err != nil {
		return nil, err
	}

	type row struct {
		ticket   string
		position int
		cand     count.Candidate
	}
	var rows []row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: candidates: %v", ErrMalformed, err)
		}
		if len(rec) < len(header) {
			return nil, fmt.Errorf("%w: candidate row has %d fields, want %d", ErrMalformed, len(rec), len(header))
		}
		if rec[cols["nom_ty"]] != "S" || !strings.EqualFold(rec[cols["state_ab"]], state) {
			continue
		}
		pos, err := strconv.Atoi(rec[cols["ballot_position"]])
		if err != nil {
			return nil, fmt.Errorf("%w: ballot position %q", ErrMalformed, rec[cols["ballot_position"]])
		}
		ticket := rec[cols["ticket"]]
		rows = append(rows, row{
			ticket:   ticket,
			position: pos,
			cand: count.Candidate{
				Name:  strings.TrimSpace(rec[cols["ballot_given_nm"]] + " " + rec[cols["surname"]]),
				Party: rec[cols["party_ballot_nm"]],
				Group: ticket,
			},
		})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no Senate candidates for %q", ErrMalformed, state)
	}

	slices.SortStableFunc(rows, func(a, b row) int {
		if c := compareTickets(a.ticket, b.ticket); c != 0 {
			return c
		}
		return cmp.Compare(a.position, b.position)
	})

	e := &Election{State: strings.ToUpper(state)}
	for i, r := range rows {
		c := r.cand
		c.ID = count.CandidateID(i + 1)
		c.Position = i + 1
		e.Candidates = append(e.Candidates, c)

		if r.ticket == Ungrouped {
			continue
		}
		if n := len(e.Groups); n == 0 || e.Groups[n-1].Ticket != r.ticket {
			e.Groups = append(e.Groups, Group{Ticket: r.ticket})
		}
		g := &e.Groups[len(e.Groups)-1]
		g.Candidates = append(g.Candidates, c.ID)
	}
	return e, nil
}

// compareTickets orders A < B < .. < Z < AA < AB < .. with UG last.
func compareTickets(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == Ungrouped:
		return 1
	case b == Ungrouped:
		return -1
	}
	if c := cmp.Compare(len(a), len(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func columnIndex(header []string, names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	out := make(map[string]int, len(names))
	for _, n := range names {
		i, ok := idx[n]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformed, n)
		}
		out[n] = i
	}
	return out, nil
}
