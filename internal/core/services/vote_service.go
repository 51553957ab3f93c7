package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ballothub/ballot/internal/core/domain"
	"github.com/ballothub/ballot/internal/core/ports"
)

type voteService struct {
	votes               ports.VoteRepository
	candidates          ports.CandidateRepository
	accounts            ports.AccountRepository
	elections           ports.ElectionRepository
	requireVerification bool
}

func NewVoteService(votes ports.VoteRepository, candidates ports.CandidateRepository, accounts ports.AccountRepository, elections ports.ElectionRepository, requireVerification bool) ports.VoteService {
	return &voteService{
		votes:               votes,
		candidates:          candidates,
		accounts:            accounts,
		elections:           elections,
		requireVerification: requireVerification,
	}
}

func (s *voteService) Cast(ctx context.Context, principal domain.Principal, candidateID uuid.UUID) (*domain.Vote, error) {
	account, err := s.accounts.GetByID(ctx, principal.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}

	if s.requireVerification && !account.Verified {
		return nil, domain.ErrNotVerified
	}

	// Casting requires an open election.
	active, err := s.elections.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active election: %w", err)
	}
	if active == nil {
		return nil, domain.ErrVotingClosed
	}

	existing, err := s.votes.GetByAccount(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing vote: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrAlreadyVoted
	}

	candidate, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	if candidate == nil {
		return nil, domain.ErrCandidateNotFound
	}

	vote := &domain.Vote{
		ID:          uuid.New(),
		AccountID:   account.ID,
		CandidateID: candidate.ID,
		// 128-bit random token in canonical form, globally unique.
		ConfirmationCode: uuid.New().String(),
		CreatedAt:        time.Now(),
	}

	// The unique constraint on the account column is authoritative; a
	// concurrent cast that slipped past the check above fails here as
	// ErrAlreadyVoted rather than racing silently.
	if err := s.votes.Create(ctx, vote); err != nil {
		return nil, err
	}

	return vote, nil
}

func (s *voteService) VerifyByCode(ctx context.Context, code string) (*domain.BallotReceipt, error) {
	vote, err := s.votes.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up vote: %w", err)
	}
	if vote == nil {
		return nil, domain.ErrVoteNotFound
	}

	return s.receipt(ctx, vote)
}

func (s *voteService) VoteForAccount(ctx context.Context, accountID uuid.UUID) (*domain.BallotReceipt, error) {
	vote, err := s.votes.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up vote: %w", err)
	}
	if vote == nil {
		return nil, domain.ErrVoteNotFound
	}

	return s.receipt(ctx, vote)
}

func (s *voteService) receipt(ctx context.Context, vote *domain.Vote) (*domain.BallotReceipt, error) {
	candidate, err := s.candidates.GetByID(ctx, vote.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	if candidate == nil {
		return nil, domain.ErrCandidateNotFound
	}

	account, err := s.accounts.GetByID(ctx, vote.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return nil, domain.ErrAccountNotFound
	}

	return &domain.BallotReceipt{
		Vote:      *vote,
		Candidate: *candidate,
		Voter:     account.Username,
	}, nil
}
