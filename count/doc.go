// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package count implements the Single Transferable Vote count used for the
Australian Senate, with weighted inclusive Gregory surplus transfers.

# Inputs

A count takes a Roster, a BallotStore validated against that roster and a
Config:

	roster, err := count.NewRoster(candidates)
	store, err := count.NewBallotStore(roster, ballots)
	res, err := count.Run(roster, store, count.Config{Seats: 12, Seed: 7})

Ballots arrive already expanded: each is an ordered list of candidate ids
with no repeats. Identical lists are stored once with a paper count.

Roster and BallotStore are never modified, so many counts (different seats,
seeds or options) can run over the same inputs concurrently. Everything a
count changes lives in its own private context.

# Arithmetic

Votes are Values: int64 fixed point with six decimal places. Transfer values
are truncated to six places, as are the values parcels carry after each
transfer. The fractions of a vote truncation drops are accumulated as lost
by fraction, so for every round

	sum of candidate totals + exhausted + lost by fraction = formal ballots

Arithmetic that would overflow returns ErrPrecisionExceeded.

# Rounds

Each round does one thing:

  - elect-remaining: the hopefuls left exactly fill the seats left
  - elect: the highest hopeful at or above quota is elected and every parcel
    it holds moves on at surplus / total
  - elect-last-seat: optional, the higher of the last two hopefuls
  - exclude: the lowest hopeful is excluded and its parcels move on at the
    values they already carry

Moves walk each ballot separately past candidates that are no longer
hopeful; a ballot with nowhere left to go is exhausted.

# Ties

Ties are settled on the totals of earlier rounds, most recent first, and
only when those never differ by a draw seeded from Config.Seed. Every tie
and how it was settled is recorded in the round it happened in.

# Errors

  - ErrInvalidInput: bad seats, unknown or repeated candidates on a ballot,
    no ballots. Always reported before round 1.
  - ErrDeadlocked (as *DeadlockError): hopefuls can no longer fill the seats.
  - ErrPrecisionExceeded: fixed-point overflow.
*/
package count
