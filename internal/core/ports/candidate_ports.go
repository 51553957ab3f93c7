package ports

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/ballothub/ballot/internal/core/domain"
)

type CandidateRepository interface {
	Create(ctx context.Context, candidate *domain.Candidate) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
	List(ctx context.Context) ([]domain.Candidate, error)
	Update(ctx context.Context, candidate *domain.Candidate) error
	// Delete removes the candidate and, by cascade, every vote cast for it.
	Delete(ctx context.Context, id uuid.UUID) error
}

type CandidateInput struct {
	Name  string
	Party string
	Bio   string
	// Image is an optional portrait upload; stored under a server-derived
	// name, never the upload filename.
	Image io.Reader
}

type CandidateService interface {
	Create(ctx context.Context, admin domain.Principal, input CandidateInput) (*domain.Candidate, error)
	Update(ctx context.Context, admin domain.Principal, id uuid.UUID, input CandidateInput) (*domain.Candidate, error)
	Delete(ctx context.Context, admin domain.Principal, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Candidate, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
}
