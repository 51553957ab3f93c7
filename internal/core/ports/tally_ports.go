package ports

import (
	"context"

	"github.com/ballothub/ballot/internal/core/domain"
)

type TallyRepository interface {
	// CountByCandidate returns every candidate with its vote count,
	// zero-vote candidates included, in candidate insertion order.
	CountByCandidate(ctx context.Context) ([]domain.CandidateCount, error)
	TotalVotes(ctx context.Context) (int64, error)
	TotalVoters(ctx context.Context) (int64, error)
	PendingVerifications(ctx context.Context) (int64, error)
}

type ElectionStats struct {
	TotalVoters          int64 `json:"total_voters"`
	TotalVotes           int64 `json:"total_votes"`
	PendingVerifications int64 `json:"pending_verifications"`
}

type TallyService interface {
	Results(ctx context.Context, admin domain.Principal) (*domain.TallyReport, error)
	Stats(ctx context.Context, admin domain.Principal) (*ElectionStats, error)
}
