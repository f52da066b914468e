// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/danielhkuo/senate-recount/ballotparse"
	"github.com/danielhkuo/senate-recount/count"
)

// stateInput is one state's ballot paper and formal ballots, ready to count.
type stateInput struct {
	election *ballotparse.Election
	roster   *count.Roster
	store    *count.BallotStore
	stats    ballotparse.Stats
}

func loadState(candidates []byte, preferencesPath, state string, c ballotparse.Constraints) (*stateInput, error) {
	election, err := ballotparse.ReadCandidates(bytes.NewReader(candidates), state)
	if err != nil {
		return nil, fmt.Errorf("%s candidates: %w", state, err)
	}
	roster, err := election.Roster()
	if err != nil {
		return nil, fmt.Errorf("%s roster: %w", state, err)
	}

	f, err := os.Open(preferencesPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ballots, stats, err := ballotparse.ReadBallots(f, election, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", preferencesPath, err)
	}
	store, err := count.NewBallotStore(roster, ballots)
	if err != nil {
		return nil, fmt.Errorf("%s ballots: %w", state, err)
	}

	logger.Info("ballots loaded",
		"state", election.State,
		"formal", stats.Formal,
		"informal", stats.InformalTotal(),
		"distinct", store.Len(),
	)
	return &stateInput{election: election, roster: roster, store: store, stats: stats}, nil
}

func constraintsFor(choice string) (ballotparse.Constraints, error) {
	c := ballotparse.Official()
	ch, err := ballotparse.ParseChoice(choice)
	if err != nil {
		return c, err
	}
	c.Choice = ch
	return c, nil
}
