// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and result types for the API.

# Request Types

  - CreateCountRequest: label, seats, seed, last_seat_shortcut, candidates, ballots
  - CandidateInput: id, name, party, group
  - BallotInput: preferences (candidate ids), papers

# Response Types

  - CreateCountResponse: count_id, admin_key, cached, result
  - ListCountsResponse: counts
  - CountDetailResponse: count, result (without rounds)
  - CountRoundsResponse: count_id, rounds
  - ErrorResponse: error, message

# Result Types

CountResult is the JSON form of a finished count and is what the server
stores as the result snapshot. RoundView, TallyView, SurplusView,
TransferView and TieBreakView mirror one round of the audit trail.

Vote values are strings with exactly six decimal places ("2.499996"), never
floats, so a client sees the same truncated numbers the count used.

# JSON Conventions

  - Field names use snake_case
  - Candidates are referred to by the ids given in the request
  - A transfer with a null "to" went to the exhausted pile
  - A tie break without "at_round" was settled by the seeded draw
*/
package models
