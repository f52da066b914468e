package models

import "time"

// Count state constants, matching count.State strings
const (
	StateAllSeatsFilled = "all-seats-filled"
	StateDeadlocked     = "deadlocked"
)

// Request types

type CandidateInput struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party,omitempty"`
	Group string `json:"group,omitempty"`
}

// Preferences are candidate ids, most preferred first. Papers defaults to 1.
type BallotInput struct {
	Preferences []int `json:"preferences"`
	Papers      int64 `json:"papers,omitempty"`
}

type CreateCountRequest struct {
	Label            string           `json:"label"`
	Seats            int              `json:"seats"`
	Seed             uint64           `json:"seed"`
	LastSeatShortcut bool             `json:"last_seat_shortcut"`
	Candidates       []CandidateInput `json:"candidates"`
	Ballots          []BallotInput    `json:"ballots"`
}

// Response types

type CreateCountResponse struct {
	CountID  string      `json:"count_id"`
	AdminKey string      `json:"admin_key"`
	Cached   bool        `json:"cached"`
	Result   CountResult `json:"result"`
}

type CountSummary struct {
	ID               string    `json:"id"`
	Label            string    `json:"label"`
	Seats            int       `json:"seats"`
	Seed             uint64    `json:"seed"`
	LastSeatShortcut bool      `json:"last_seat_shortcut"`
	Quota            int64     `json:"quota"`
	TotalBallots     int64     `json:"total_ballots"`
	State            string    `json:"state"`
	Rounds           int       `json:"rounds"`
	InputsHash       string    `json:"inputs_hash"`
	CreatedAt        time.Time `json:"created_at"`
}

type ListCountsResponse struct {
	Counts []CountSummary `json:"counts"`
}

type CountDetailResponse struct {
	Count  CountSummary `json:"count"`
	Result CountResult  `json:"result"`
}

type CountRoundsResponse struct {
	CountID string      `json:"count_id"`
	Rounds  []RoundView `json:"rounds"`
}

// Result types. Vote values are decimal strings with six places so that no
// precision is lost in JSON.

type CandidateView struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party,omitempty"`
	Group string `json:"group,omitempty"`
}

type ElectedView struct {
	Order     int           `json:"order"`
	Round     int           `json:"round"`
	Candidate CandidateView `json:"candidate"`
}

type TallyView struct {
	Candidate int    `json:"candidate"`
	Votes     string `json:"votes"`
	Status    string `json:"status"`
}

type SurplusView struct {
	Candidate      int    `json:"candidate"`
	Total          string `json:"total"`
	Surplus        string `json:"surplus"`
	TransferValue  string `json:"transfer_value"`
	Moved          string `json:"moved"`
	LostByFraction string `json:"lost_by_fraction"`
}

// To is nil when the ballots exhausted.
type TransferView struct {
	From   *int   `json:"from,omitempty"`
	To     *int   `json:"to"`
	Value  string `json:"value"`
	Papers int64  `json:"papers"`
	Votes  string `json:"votes"`
}

type TieBreakView struct {
	Kind    string `json:"kind"`
	Tied    []int  `json:"tied"`
	Method  string `json:"method"`
	AtRound *int   `json:"at_round,omitempty"`
	Seed    uint64 `json:"seed"`
	Chosen  int    `json:"chosen"`
}

type RoundView struct {
	Number          int            `json:"number"`
	Action          string         `json:"action"`
	Candidates      []int          `json:"candidates"`
	Tally           []TallyView    `json:"tally"`
	Surplus         *SurplusView   `json:"surplus,omitempty"`
	Transfers       []TransferView `json:"transfers,omitempty"`
	TieBreaks       []TieBreakView `json:"tie_breaks,omitempty"`
	Exhausted       string         `json:"exhausted"`
	ExhaustedPapers int64          `json:"exhausted_papers"`
	LostByFraction  string         `json:"lost_by_fraction"`
}

type CountResult struct {
	State            string          `json:"state"`
	Seats            int             `json:"seats"`
	Quota            int64           `json:"quota"`
	TotalBallots     int64           `json:"total_ballots"`
	Seed             uint64          `json:"seed"`
	Candidates       []CandidateView `json:"candidates"`
	Elected          []ElectedView   `json:"elected"`
	Excluded         []int           `json:"excluded"`
	FirstPreferences []TallyView     `json:"first_preferences"`
	Exhausted        string          `json:"exhausted"`
	ExhaustedPapers  int64           `json:"exhausted_papers"`
	LostByFraction   string          `json:"lost_by_fraction"`
	Rounds           []RoundView     `json:"rounds,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
