package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ballothub/ballot/internal/core/domain"
)

type VoteRepository interface {
	Create(ctx context.Context, vote *domain.Vote) error
	GetByAccount(ctx context.Context, accountID uuid.UUID) (*domain.Vote, error)
	GetByCode(ctx context.Context, code string) (*domain.Vote, error)
}

type VoteService interface {
	Cast(ctx context.Context, principal domain.Principal, candidateID uuid.UUID) (*domain.Vote, error)
	// VerifyByCode is the public, unauthenticated receipt lookup.
	VerifyByCode(ctx context.Context, code string) (*domain.BallotReceipt, error)
	VoteForAccount(ctx context.Context, accountID uuid.UUID) (*domain.BallotReceipt, error)
}
