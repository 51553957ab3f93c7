package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ballothub/ballot/internal/core/domain"
)

type ElectionRepository interface {
	Create(ctx context.Context, election *domain.Election) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Election, error)
	GetActive(ctx context.Context) (*domain.Election, error)
	List(ctx context.Context) ([]domain.Election, error)
	Update(ctx context.Context, election *domain.Election) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Activate flips the target election active and every other election
	// inactive inside a single transaction.
	Activate(ctx context.Context, id uuid.UUID) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type ElectionInput struct {
	Title       string
	Description string
	StartsAt    time.Time
	EndsAt      time.Time
}

type ElectionService interface {
	Create(ctx context.Context, admin domain.Principal, input ElectionInput) (*domain.Election, error)
	Update(ctx context.Context, admin domain.Principal, id uuid.UUID, input ElectionInput) (*domain.Election, error)
	Delete(ctx context.Context, admin domain.Principal, id uuid.UUID) error
	Activate(ctx context.Context, admin domain.Principal, id uuid.UUID) error
	Deactivate(ctx context.Context, admin domain.Principal, id uuid.UUID) error
	List(ctx context.Context, admin domain.Principal) ([]domain.Election, error)
	Active(ctx context.Context) (*domain.Election, error)
}
