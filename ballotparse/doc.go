// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ballotparse reads the Australian Electoral Commission's published
Senate data into inputs for package count.

# Candidates

[ReadCandidates] reads the national candidate list and keeps the Senate
nominations for one state. Candidates are put in ballot-paper order, tickets
A to Z then AA onwards with ungrouped candidates last, and given ids from 1
in that order. Each ticket other than UG becomes a [Group] with a box above
the line.

# Preferences

[ParsePreferences] cleans up one ballot the way the savings provisions of the
Electoral Act do:

  - an empty field is an unmarked box
  - "*" and "/" count as a 1
  - anything else that is not a number makes the ballot informal
  - a number used twice ends the sequence before that number
  - a gap ends the sequence at the first missing number

Above-the-line boxes expand to their group's candidates in order. When a
ballot is formal on both sides of the line, [Constraints] decide which side
counts; [Official] prefers below the line.

# Ballots

[ReadBallots] streams the formal preferences file and returns one
count.Ballot per formal paper, with the informal ones tallied by reason in
[Stats]:

	ballots, stats, err := ballotparse.ReadBallots(f, election, ballotparse.Official())
	if err != nil {
	    return err
	}
	store, err := count.NewBallotStore(roster, ballots)
*/
package ballotparse
