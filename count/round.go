// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package count

// Status is where a candidate stands in a count. Elected and Excluded are
// terminal.
type Status int

const (
	Hopeful Status = iota
	Elected
	Excluded
)

func (s Status) String() string {
	switch s {
	case Hopeful:
		return "hopeful"
	case Elected:
		return "elected"
	case Excluded:
		return "excluded"
	default:
		return "unknown"
	}
}

// Action is what a round did.
type Action string

const (
	// ActionElect elects the highest hopeful at or above quota and
	// distributes any surplus.
	ActionElect Action = "elect"
	// ActionElectRemaining elects every remaining hopeful because they
	// exactly fill the remaining seats.
	ActionElectRemaining Action = "elect-remaining"
	// ActionElectLastSeat elects the higher of the last two hopefuls for
	// the last seat.
	ActionElectLastSeat Action = "elect-last-seat"
	// ActionExclude excludes the lowest hopeful and passes on its parcels.
	ActionExclude Action = "exclude"
)

// Tally is a candidate's standing at the end of a round.
type Tally struct {
	Candidate CandidateID
	Votes     Value
	Status    Status
}

// Surplus describes a surplus distribution.
type Surplus struct {
	Candidate      CandidateID
	Total          Value // votes held when elected
	Surplus        Value // Total - quota
	TransferValue  Value // Surplus / Total, truncated
	Moved          Value // votes that reached candidates or exhausted
	LostByFraction Value // Surplus - Moved
}

// Round is one entry in the audit trail. Rounds are appended once and never
// changed.
type Round struct {
	Number     int
	Action     Action
	Candidates []CandidateID // elected or excluded this round, in order

	// Tally lists every candidate in roster order after the round's action.
	Tally []Tally

	Surplus   *Surplus   // set when a surplus was distributed
	Transfers []Transfer // parcels moved this round
	TieBreaks []TieBreak

	Exhausted       Value // cumulative
	ExhaustedPapers int64 // cumulative
	LostByFraction  Value // cumulative
}

// VotesOf returns the candidate's total at the end of the round.
func (r Round) VotesOf(id CandidateID) (Value, bool) {
	for _, t := range r.Tally {
		if t.Candidate == id {
			return t.Votes, true
		}
	}
	return 0, false
}
