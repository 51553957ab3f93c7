package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/ballothub/ballot/internal/core/domain"
	"github.com/ballothub/ballot/internal/core/ports"
)

type candidateService struct {
	candidates ports.CandidateRepository
	artifacts  ports.ArtifactStore
}

func NewCandidateService(candidates ports.CandidateRepository, artifacts ports.ArtifactStore) ports.CandidateService {
	return &candidateService{
		candidates: candidates,
		artifacts:  artifacts,
	}
}

func (s *candidateService) Create(ctx context.Context, admin domain.Principal, input ports.CandidateInput) (*domain.Candidate, error) {
	if !admin.Admin {
		return nil, domain.ErrUnauthorized
	}
	if input.Name == "" || input.Party == "" {
		return nil, fmt.Errorf("%w: name and party are required", domain.ErrInvalidInput)
	}

	candidate := &domain.Candidate{
		ID:        uuid.New(),
		Name:      input.Name,
		Party:     input.Party,
		Bio:       input.Bio,
		CreatedAt: time.Now(),
	}

	if input.Image != nil {
		ref, err := s.storeImage(ctx, candidate.ID, input.Image)
		if err != nil {
			return nil, err
		}
		candidate.ImageRef = ref
	}

	if err := s.candidates.Create(ctx, candidate); err != nil {
		if candidate.ImageRef != "" {
			_ = s.artifacts.Delete(ctx, candidate.ImageRef)
		}
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}

	return candidate, nil
}

func (s *candidateService) Update(ctx context.Context, admin domain.Principal, id uuid.UUID, input ports.CandidateInput) (*domain.Candidate, error) {
	if !admin.Admin {
		return nil, domain.ErrUnauthorized
	}

	candidate, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	if candidate == nil {
		return nil, domain.ErrCandidateNotFound
	}

	candidate.Name = input.Name
	candidate.Party = input.Party
	candidate.Bio = input.Bio

	if input.Image != nil {
		ref, err := s.storeImage(ctx, candidate.ID, input.Image)
		if err != nil {
			return nil, err
		}
		if candidate.ImageRef != "" {
			_ = s.artifacts.Delete(ctx, candidate.ImageRef)
		}
		candidate.ImageRef = ref
	}

	if err := s.candidates.Update(ctx, candidate); err != nil {
		return nil, fmt.Errorf("failed to update candidate: %w", err)
	}
	return candidate, nil
}

// Delete removes the candidate, its stored image, and by cascade every vote
// cast for it. The vote loss is the documented policy, not an accident.
func (s *candidateService) Delete(ctx context.Context, admin domain.Principal, id uuid.UUID) error {
	if !admin.Admin {
		return domain.ErrUnauthorized
	}

	candidate, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get candidate: %w", err)
	}
	if candidate == nil {
		return domain.ErrCandidateNotFound
	}

	if err := s.candidates.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}

	if candidate.ImageRef != "" {
		if err := s.artifacts.Delete(ctx, candidate.ImageRef); err != nil {
			return fmt.Errorf("failed to delete candidate image: %w", err)
		}
	}

	return nil
}

func (s *candidateService) List(ctx context.Context) ([]domain.Candidate, error) {
	return s.candidates.List(ctx)
}

func (s *candidateService) Get(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	candidate, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	if candidate == nil {
		return nil, domain.ErrCandidateNotFound
	}
	return candidate, nil
}

func (s *candidateService) storeImage(ctx context.Context, candidateID uuid.UUID, image io.Reader) (string, error) {
	name := fmt.Sprintf("candidates/%s_%s", candidateID, uuid.New())
	ref, err := s.artifacts.Store(ctx, name, image)
	if err != nil {
		return "", fmt.Errorf("failed to store candidate image: %w", err)
	}
	return ref, nil
}
