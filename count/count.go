// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package count

import (
	"fmt"
	"log/slog"
	"slices"
)

// State is the state of a count.
type State int

const (
	Counting State = iota
	AllSeatsFilled
	Deadlocked
)

func (s State) String() string {
	switch s {
	case Counting:
		return "counting"
	case AllSeatsFilled:
		return "all-seats-filled"
	case Deadlocked:
		return "deadlocked"
	default:
		return "unknown"
	}
}

// Config holds the parameters of a single count.
type Config struct {
	Seats int
	// Seed feeds the draw used when a tie survives every earlier round.
	// The same seed always reproduces the same draws.
	Seed uint64
	// LastSeatShortcut elects the higher of the last two hopefuls when one
	// seat remains instead of excluding the lower one first.
	LastSeatShortcut bool
	Logger           *slog.Logger
}

// Result is the outcome of a completed count.
type Result struct {
	State        State
	Seats        int
	Quota        int64
	TotalBallots int64
	Seed         uint64

	Elected  []CandidateID // in order of election
	Excluded []CandidateID // in order of exclusion

	FirstPreferences []Tally
	Rounds           []Round

	Exhausted       Value
	ExhaustedPapers int64
	LostByFraction  Value
}

// count is the exclusively owned, mutable context of one count.
type count struct {
	roster *Roster
	store  *BallotStore
	cfg    Config
	logger *slog.Logger

	quota  Value
	status []Status
	totals []Value
	hold   *holdings
	ties   *resolver

	history  [][]Value // history[0] first preferences, history[k] end of round k
	rounds   []Round
	elected  []int
	excluded []int

	exhausted       Value
	exhaustedPapers int64
	lost            Value
	state           State
}

// Run counts store's ballots for cfg.Seats seats. roster and store are only
// read, so any number of counts may run over them at once.
func Run(roster *Roster, store *BallotStore, cfg Config) (*Result, error) {
	if roster == nil || store == nil {
		return nil, fmt.Errorf("%w: roster and ballots are required", ErrInvalidInput)
	}
	if store.Roster() != roster {
		return nil, fmt.Errorf("%w: ballots were validated against a different roster", ErrInvalidInput)
	}

	q, err := Quota(store.Total(), cfg.Seats, roster.Len())
	if err != nil {
		return nil, err
	}
	quota, err := Votes(q)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	n := roster.Len()
	c := &count{
		roster: roster,
		store:  store,
		cfg:    cfg,
		logger: logger,
		quota:  quota,
		status: make([]Status, n),
		totals: make([]Value, n),
		hold:   newHoldings(store),
		ties:   newResolver(cfg.Seed),
		state:  Counting,
	}

	if err := c.tally(); err != nil {
		return nil, err
	}
	c.history = append(c.history, slices.Clone(c.totals))
	first := c.snapshot()

	logger.Info("count started",
		"candidates", n,
		"ballots", store.Total(),
		"seats", cfg.Seats,
		"quota", q,
	)

	for c.state == Counting {
		if err := c.step(); err != nil {
			logger.Error("count failed", "round", len(c.rounds)+1, "error", err)
			return nil, err
		}
	}

	logger.Info("count finished",
		"state", c.state.String(),
		"rounds", len(c.rounds),
		"exhausted", c.exhausted.String(),
		"lost_by_fraction", c.lost.String(),
	)

	return c.result(first, q), nil
}

// step runs one round.
func (c *count) step() error {
	number := len(c.rounds) + 1
	unfilled := c.cfg.Seats - len(c.elected)
	hopeful := c.hopefuls()

	if len(hopeful) < unfilled {
		c.state = Deadlocked
		return &DeadlockError{Round: number, Hopeful: len(hopeful), Unfilled: unfilled}
	}

	r := Round{Number: number}
	var err error
	reached := c.atQuota(hopeful)
	switch {
	case number == 1 && len(hopeful) == unfilled:
		// As many candidates as seats: all are elected on first preferences.
		c.electRemaining(&r, hopeful)
	case len(reached) > 0:
		err = c.electHighest(&r, reached)
	case len(hopeful) == unfilled:
		c.electRemaining(&r, hopeful)
	case c.cfg.LastSeatShortcut && unfilled == 1 && len(hopeful) == 2:
		c.electLastSeat(&r, hopeful)
	default:
		err = c.excludeLowest(&r, hopeful)
	}
	if err != nil {
		return err
	}

	if err := c.tally(); err != nil {
		return err
	}
	c.history = append(c.history, slices.Clone(c.totals))

	r.Tally = c.snapshot()
	r.Exhausted = c.exhausted
	r.ExhaustedPapers = c.exhaustedPapers
	r.LostByFraction = c.lost
	c.rounds = append(c.rounds, r)

	if len(c.elected) == c.cfg.Seats {
		c.state = AllSeatsFilled
	}
	return nil
}

func (c *count) electHighest(r *Round, reached []int) error {
	slot := c.pick(r, TieElection, reached)
	c.elect(r, slot)
	r.Action = ActionElect

	if len(c.elected) == c.cfg.Seats {
		return nil
	}
	s, transfers, err := c.distributeSurplus(slot, r.Number)
	if err != nil {
		return err
	}
	r.Surplus = s
	r.Transfers = transfers
	if s != nil {
		c.logger.Debug("surplus distributed",
			"round", r.Number,
			"candidate", c.roster.candidates[slot].Label(),
			"surplus", s.Surplus.String(),
			"transfer_value", s.TransferValue.String(),
		)
	}
	return nil
}

// electRemaining elects every hopeful in descending order of votes.
func (c *count) electRemaining(r *Round, hopeful []int) {
	r.Action = ActionElectRemaining
	remaining := slices.Clone(hopeful)
	for len(remaining) > 0 {
		slot := c.pick(r, TieElection, remaining)
		c.elect(r, slot)
		remaining = slices.DeleteFunc(remaining, func(s int) bool { return s == slot })
	}
}

func (c *count) electLastSeat(r *Round, hopeful []int) {
	r.Action = ActionElectLastSeat
	c.elect(r, c.pick(r, TieElection, hopeful))
}

func (c *count) excludeLowest(r *Round, hopeful []int) error {
	slot := c.pick(r, TieExclusion, hopeful)
	c.status[slot] = Excluded
	c.excluded = append(c.excluded, slot)
	r.Action = ActionExclude
	r.Candidates = append(r.Candidates, c.roster.id(slot))

	c.logger.Debug("candidate excluded",
		"round", r.Number,
		"candidate", c.roster.candidates[slot].Label(),
		"votes", c.totals[slot].String(),
	)

	transfers, err := c.excludeAndTransfer(slot, r.Number)
	if err != nil {
		return err
	}
	r.Transfers = transfers
	return nil
}

// pick returns the candidate with the highest (election) or lowest
// (exclusion) current total among slots, settling ties through the
// resolver and recording them on the round.
func (c *count) pick(r *Round, kind TieKind, slots []int) int {
	best := c.totals[slots[0]]
	for _, s := range slots[1:] {
		v := c.totals[s]
		if (kind == TieElection && v > best) || (kind == TieExclusion && v < best) {
			best = v
		}
	}
	var tied []int
	for _, s := range slots {
		if c.totals[s] == best {
			tied = append(tied, s)
		}
	}
	if len(tied) == 1 {
		return tied[0]
	}

	slot, tb := c.ties.resolve(kind, tied, c.history, c.roster)
	r.TieBreaks = append(r.TieBreaks, tb)
	c.logger.Debug("tie resolved",
		"round", r.Number,
		"kind", string(kind),
		"method", string(tb.Method),
		"seed", tb.Seed,
		"chosen", c.roster.candidates[slot].Label(),
	)
	return slot
}

func (c *count) elect(r *Round, slot int) {
	c.status[slot] = Elected
	c.elected = append(c.elected, slot)
	r.Candidates = append(r.Candidates, c.roster.id(slot))

	c.logger.Debug("candidate elected",
		"round", r.Number,
		"order", len(c.elected),
		"candidate", c.roster.candidates[slot].Label(),
		"votes", c.totals[slot].String(),
	)
}

// tally recomputes every hopeful candidate's total from its parcels.
func (c *count) tally() error {
	for slot, st := range c.status {
		if st != Hopeful {
			continue
		}
		v, err := c.hold.total(slot)
		if err != nil {
			return err
		}
		c.totals[slot] = v
	}
	return nil
}

func (c *count) hopefuls() []int {
	var out []int
	for slot, st := range c.status {
		if st == Hopeful {
			out = append(out, slot)
		}
	}
	return out
}

func (c *count) hopefulMask() []bool {
	mask := make([]bool, len(c.status))
	for slot, st := range c.status {
		mask[slot] = st == Hopeful
	}
	return mask
}

func (c *count) atQuota(hopeful []int) []int {
	var out []int
	for _, slot := range hopeful {
		if c.totals[slot] >= c.quota {
			out = append(out, slot)
		}
	}
	return out
}

func (c *count) snapshot() []Tally {
	out := make([]Tally, len(c.status))
	for slot := range c.status {
		out[slot] = Tally{
			Candidate: c.roster.id(slot),
			Votes:     c.totals[slot],
			Status:    c.status[slot],
		}
	}
	return out
}

func (c *count) result(first []Tally, quota int64) *Result {
	res := &Result{
		State:            c.state,
		Seats:            c.cfg.Seats,
		Quota:            quota,
		TotalBallots:     c.store.Total(),
		Seed:             c.cfg.Seed,
		FirstPreferences: first,
		Rounds:           c.rounds,
		Exhausted:        c.exhausted,
		ExhaustedPapers:  c.exhaustedPapers,
		LostByFraction:   c.lost,
	}
	for _, slot := range c.elected {
		res.Elected = append(res.Elected, c.roster.id(slot))
	}
	for _, slot := range c.excluded {
		res.Excluded = append(res.Excluded, c.roster.id(slot))
	}
	return res
}
