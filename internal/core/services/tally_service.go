package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/ballothub/ballot/internal/core/domain"
	"github.com/ballothub/ballot/internal/core/ports"
)

type tallyService struct {
	tally ports.TallyRepository
}

func NewTallyService(tally ports.TallyRepository) ports.TallyService {
	return &tallyService{tally: tally}
}

// Results recomputes the tally on every call; nothing is persisted.
func (s *tallyService) Results(ctx context.Context, admin domain.Principal) (*domain.TallyReport, error) {
	if !admin.Admin {
		return nil, domain.ErrUnauthorized
	}

	counts, err := s.tally.CountByCandidate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}

	// Counts arrive in candidate insertion order; the stable sort keeps
	// that order among equal counts.
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Votes > counts[j].Votes
	})

	var total int64
	for _, c := range counts {
		total += c.Votes
	}

	return &domain.TallyReport{Results: counts, TotalVotes: total}, nil
}

func (s *tallyService) Stats(ctx context.Context, admin domain.Principal) (*ports.ElectionStats, error) {
	if !admin.Admin {
		return nil, domain.ErrUnauthorized
	}

	voters, err := s.tally.TotalVoters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count voters: %w", err)
	}
	votes, err := s.tally.TotalVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	pending, err := s.tally.PendingVerifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending verifications: %w", err)
	}

	return &ports.ElectionStats{
		TotalVoters:          voters,
		TotalVotes:           votes,
		PendingVerifications: pending,
	}, nil
}
