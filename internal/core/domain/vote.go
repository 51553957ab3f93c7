package domain

import (
	"time"

	"github.com/google/uuid"
)

type Vote struct {
	ID               uuid.UUID `json:"id"`
	AccountID        uuid.UUID `json:"account_id"`
	CandidateID      uuid.UUID `json:"candidate_id"`
	ConfirmationCode string    `json:"confirmation_code"`
	CreatedAt        time.Time `json:"created_at"`
}

// BallotReceipt is what a confirmation-code lookup returns: the vote, the
// candidate it was cast for, and the voter's username. Anyone holding the
// code can see all three; the code itself is the only secret.
type BallotReceipt struct {
	Vote      Vote      `json:"vote"`
	Candidate Candidate `json:"candidate"`
	Voter     string    `json:"voter"`
}

// CandidateCount is one tally row.
type CandidateCount struct {
	Candidate Candidate `json:"candidate"`
	Votes     int64     `json:"votes"`
}

// TallyReport holds per-candidate counts ordered by votes descending, ties
// broken by candidate insertion order.
type TallyReport struct {
	Results    []CandidateCount `json:"results"`
	TotalVotes int64            `json:"total_votes"`
}
