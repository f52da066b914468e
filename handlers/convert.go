// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"

	"github.com/danielhkuo/senate-recount/count"
	"github.com/danielhkuo/senate-recount/models"
)

// buildInputs validates a request into a roster and ballot store. Every
// error wraps count.ErrInvalidInput.
func buildInputs(req models.CreateCountRequest, maxBallots int64) (*count.Roster, *count.BallotStore, error) {
	if len(req.Candidates) == 0 {
		return nil, nil, fmt.Errorf("%w: candidates are required", count.ErrInvalidInput)
	}
	if len(req.Ballots) == 0 {
		return nil, nil, fmt.Errorf("%w: ballots are required", count.ErrInvalidInput)
	}

	cands := make([]count.Candidate, len(req.Candidates))
	for i, c := range req.Candidates {
		if c.Name == "" {
			return nil, nil, fmt.Errorf("%w: candidate %d has no name", count.ErrInvalidInput, c.ID)
		}
		cands[i] = count.Candidate{
			ID:       count.CandidateID(c.ID),
			Name:     c.Name,
			Party:    c.Party,
			Group:    c.Group,
			Position: i + 1,
		}
	}
	roster, err := count.NewRoster(cands)
	if err != nil {
		return nil, nil, err
	}

	var papers int64
	ballots := make([]count.Ballot, len(req.Ballots))
	for i, b := range req.Ballots {
		prefs := make([]count.CandidateID, len(b.Preferences))
		for j, id := range b.Preferences {
			prefs[j] = count.CandidateID(id)
		}
		n := b.Papers
		if n == 0 {
			n = 1
		}
		if n > 0 {
			papers += n
		}
		if papers > maxBallots {
			return nil, nil, fmt.Errorf("%w: more than %d ballot papers", errTooManyBallots, maxBallots)
		}
		ballots[i] = count.Ballot{Prefs: prefs, Papers: b.Papers}
	}

	store, err := count.NewBallotStore(roster, ballots)
	if err != nil {
		return nil, nil, err
	}
	return roster, store, nil
}

func candidateView(c count.Candidate) models.CandidateView {
	return models.CandidateView{ID: int(c.ID), Name: c.Name, Party: c.Party, Group: c.Group}
}

func ids(in []count.CandidateID) []int {
	out := make([]int, len(in))
	for i, id := range in {
		out[i] = int(id)
	}
	return out
}

func tallyViews(in []count.Tally) []models.TallyView {
	out := make([]models.TallyView, len(in))
	for i, t := range in {
		out[i] = models.TallyView{Candidate: int(t.Candidate), Votes: t.Votes.String(), Status: t.Status.String()}
	}
	return out
}

func optionalID(id count.CandidateID) *int {
	if id == count.NoCandidate {
		return nil
	}
	v := int(id)
	return &v
}

func roundView(r count.Round) models.RoundView {
	v := models.RoundView{
		Number:          r.Number,
		Action:          string(r.Action),
		Candidates:      ids(r.Candidates),
		Tally:           tallyViews(r.Tally),
		Exhausted:       r.Exhausted.String(),
		ExhaustedPapers: r.ExhaustedPapers,
		LostByFraction:  r.LostByFraction.String(),
	}
	if s := r.Surplus; s != nil {
		v.Surplus = &models.SurplusView{
			Candidate:      int(s.Candidate),
			Total:          s.Total.String(),
			Surplus:        s.Surplus.String(),
			TransferValue:  s.TransferValue.String(),
			Moved:          s.Moved.String(),
			LostByFraction: s.LostByFraction.String(),
		}
	}
	for _, t := range r.Transfers {
		v.Transfers = append(v.Transfers, models.TransferView{
			From:   optionalID(t.From),
			To:     optionalID(t.To),
			Value:  t.Value.String(),
			Papers: t.Papers,
			Votes:  t.Votes.String(),
		})
	}
	for _, tb := range r.TieBreaks {
		tv := models.TieBreakView{
			Kind:   string(tb.Kind),
			Tied:   ids(tb.Tied),
			Method: string(tb.Method),
			Seed:   tb.Seed,
			Chosen: int(tb.Chosen),
		}
		if tb.Method == count.TieByHistory {
			at := tb.AtRound
			tv.AtRound = &at
		}
		v.TieBreaks = append(v.TieBreaks, tv)
	}
	return v
}

// resultView converts a finished count into its stored JSON form.
func resultView(roster *count.Roster, res *count.Result) models.CountResult {
	v := models.CountResult{
		State:            res.State.String(),
		Seats:            res.Seats,
		Quota:            res.Quota,
		TotalBallots:     res.TotalBallots,
		Seed:             res.Seed,
		Excluded:         ids(res.Excluded),
		FirstPreferences: tallyViews(res.FirstPreferences),
		Exhausted:        res.Exhausted.String(),
		ExhaustedPapers:  res.ExhaustedPapers,
		LostByFraction:   res.LostByFraction.String(),
	}
	for _, c := range roster.Candidates() {
		v.Candidates = append(v.Candidates, candidateView(c))
	}

	electedIn := make(map[count.CandidateID]int)
	for _, r := range res.Rounds {
		if r.Action != count.ActionExclude {
			for _, id := range r.Candidates {
				electedIn[id] = r.Number
			}
		}
		v.Rounds = append(v.Rounds, roundView(r))
	}
	v.Elected = []models.ElectedView{}
	for i, id := range res.Elected {
		c, _ := roster.Candidate(id)
		v.Elected = append(v.Elected, models.ElectedView{
			Order:     i + 1,
			Round:     electedIn[id],
			Candidate: candidateView(c),
		})
	}
	return v
}
