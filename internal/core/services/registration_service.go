package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ballothub/ballot/internal/core/domain"
	"github.com/ballothub/ballot/internal/core/identity"
	"github.com/ballothub/ballot/internal/core/ports"
)

type registrationService struct {
	accounts  ports.AccountRepository
	artifacts ports.ArtifactStore
	// requireVerification gates the identity-document checks and the
	// verified-before-login rule. Passed in at construction, never read
	// from ambient state.
	requireVerification bool
}

func NewRegistrationService(accounts ports.AccountRepository, artifacts ports.ArtifactStore, requireVerification bool) ports.RegistrationService {
	return &registrationService{
		accounts:            accounts,
		artifacts:           artifacts,
		requireVerification: requireVerification,
	}
}

func (s *registrationService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	if input.Password != input.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	if existing, err := s.accounts.GetByUsername(ctx, input.Username); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	} else if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	if existing, err := s.accounts.GetByEmail(ctx, input.Email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	proofRef := ""
	if s.requireVerification {
		if err := identity.Validate(input.DocumentType, input.DocumentNumber); err != nil {
			return nil, err
		}

		existing, err := s.accounts.GetByDocument(ctx, input.DocumentType, input.DocumentNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to check document: %w", err)
		}
		if existing != nil {
			return nil, domain.ErrDocumentTaken
		}

		if input.Proof != nil {
			// Name derived from the document plus a fresh token; the upload
			// filename is never used.
			name := fmt.Sprintf("id_proofs/%s_%s_%s", input.DocumentType, input.DocumentNumber, uuid.New())
			proofRef, err = s.artifacts.Store(ctx, name, input.Proof)
			if err != nil {
				return nil, fmt.Errorf("failed to store identity proof: %w", err)
			}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		ID:             uuid.New(),
		Username:       input.Username,
		Email:          input.Email,
		PasswordHash:   string(hash),
		DocumentType:   input.DocumentType,
		DocumentNumber: input.DocumentNumber,
		ProofRef:       proofRef,
		Verified:       false,
		CreatedAt:      time.Now(),
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		// A concurrent registration may have won the race past the checks
		// above; the unique constraints surface it here as a conflict.
		if proofRef != "" {
			_ = s.artifacts.Delete(ctx, proofRef)
		}
		return nil, err
	}

	return account, nil
}

func (s *registrationService) Approve(ctx context.Context, admin domain.Principal, accountID uuid.UUID) error {
	if !admin.Admin {
		return domain.ErrUnauthorized
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return domain.ErrAccountNotFound
	}

	// Idempotent: approving an already verified account is a no-op.
	return s.accounts.SetVerified(ctx, accountID, true)
}

func (s *registrationService) Reject(ctx context.Context, admin domain.Principal, accountID uuid.UUID) error {
	if !admin.Admin {
		return domain.ErrUnauthorized
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return domain.ErrAccountNotFound
	}
	if account.Admin {
		return domain.ErrUnauthorized
	}

	if err := s.accounts.Delete(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if account.ProofRef != "" {
		if err := s.artifacts.Delete(ctx, account.ProofRef); err != nil {
			return fmt.Errorf("failed to delete identity proof: %w", err)
		}
	}

	return nil
}

func (s *registrationService) MakeAdmin(ctx context.Context, admin domain.Principal, accountID uuid.UUID) error {
	if !admin.Admin {
		return domain.ErrUnauthorized
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return domain.ErrAccountNotFound
	}

	return s.accounts.SetAdmin(ctx, accountID, true)
}

func (s *registrationService) Accounts(ctx context.Context, admin domain.Principal, pendingOnly bool) ([]domain.Account, error) {
	if !admin.Admin {
		return nil, domain.ErrUnauthorized
	}
	return s.accounts.List(ctx, pendingOnly)
}

func (s *registrationService) ProofArtifact(ctx context.Context, admin domain.Principal, accountID uuid.UUID) (io.ReadCloser, error) {
	if !admin.Admin {
		return nil, domain.ErrUnauthorized
	}

	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil || account.ProofRef == "" {
		return nil, domain.ErrArtifactNotFound
	}

	return s.artifacts.Open(ctx, account.ProofRef)
}
