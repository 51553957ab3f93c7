package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ballothub/ballot/internal/core/domain"
	"github.com/ballothub/ballot/internal/core/ports"
)

type electionService struct {
	elections ports.ElectionRepository
}

func NewElectionService(elections ports.ElectionRepository) ports.ElectionService {
	return &electionService{elections: elections}
}

func (s *electionService) Create(ctx context.Context, admin domain.Principal, input ports.ElectionInput) (*domain.Election, error) {
	if !admin.Admin {
		return nil, domain.ErrUnauthorized
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidInput)
	}

	election := &domain.Election{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		Active:      false,
		CreatedAt:   time.Now(),
	}

	if err := s.elections.Create(ctx, election); err != nil {
		return nil, fmt.Errorf("failed to create election: %w", err)
	}
	return election, nil
}

func (s *electionService) Update(ctx context.Context, admin domain.Principal, id uuid.UUID, input ports.ElectionInput) (*domain.Election, error) {
	if !admin.Admin {
		return nil, domain.ErrUnauthorized
	}
	if input.Title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if !input.EndsAt.After(input.StartsAt) {
		return nil, fmt.Errorf("%w: end date must be after start date", domain.ErrInvalidInput)
	}

	election, err := s.elections.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get election: %w", err)
	}
	if election == nil {
		return nil, domain.ErrElectionNotFound
	}

	election.Title = input.Title
	election.Description = input.Description
	election.StartsAt = input.StartsAt
	election.EndsAt = input.EndsAt

	if err := s.elections.Update(ctx, election); err != nil {
		return nil, fmt.Errorf("failed to update election: %w", err)
	}
	return election, nil
}

func (s *electionService) Delete(ctx context.Context, admin domain.Principal, id uuid.UUID) error {
	if !admin.Admin {
		return domain.ErrUnauthorized
	}

	election, err := s.elections.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get election: %w", err)
	}
	if election == nil {
		return domain.ErrElectionNotFound
	}

	return s.elections.Delete(ctx, id)
}

func (s *electionService) Activate(ctx context.Context, admin domain.Principal, id uuid.UUID) error {
	if !admin.Admin {
		return domain.ErrUnauthorized
	}

	election, err := s.elections.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get election: %w", err)
	}
	if election == nil {
		return domain.ErrElectionNotFound
	}

	// Deactivate-all-then-activate-one runs in one transaction in the
	// repository so there is never a window with two active elections.
	return s.elections.Activate(ctx, id)
}

func (s *electionService) Deactivate(ctx context.Context, admin domain.Principal, id uuid.UUID) error {
	if !admin.Admin {
		return domain.ErrUnauthorized
	}

	election, err := s.elections.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get election: %w", err)
	}
	if election == nil {
		return domain.ErrElectionNotFound
	}

	return s.elections.Deactivate(ctx, id)
}

func (s *electionService) List(ctx context.Context, admin domain.Principal) ([]domain.Election, error) {
	if !admin.Admin {
		return nil, domain.ErrUnauthorized
	}
	return s.elections.List(ctx)
}

func (s *electionService) Active(ctx context.Context) (*domain.Election, error) {
	election, err := s.elections.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get active election: %w", err)
	}
	if election == nil {
		return nil, domain.ErrNoActiveElection
	}
	return election, nil
}
