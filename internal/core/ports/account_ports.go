package ports

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/ballothub/ballot/internal/core/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByDocument(ctx context.Context, docType domain.DocumentType, number string) (*domain.Account, error)
	List(ctx context.Context, pendingOnly bool) ([]domain.Account, error)
	SetVerified(ctx context.Context, id uuid.UUID, verified bool) error
	SetAdmin(ctx context.Context, id uuid.UUID, admin bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	DocumentType    domain.DocumentType
	DocumentNumber  string
	// Proof is the optional identity-proof upload. The caller-supplied
	// filename is never used; only the content is read.
	Proof io.Reader
}

type RegistrationService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	Approve(ctx context.Context, admin domain.Principal, accountID uuid.UUID) error
	Reject(ctx context.Context, admin domain.Principal, accountID uuid.UUID) error
	MakeAdmin(ctx context.Context, admin domain.Principal, accountID uuid.UUID) error
	Accounts(ctx context.Context, admin domain.Principal, pendingOnly bool) ([]domain.Account, error)
	ProofArtifact(ctx context.Context, admin domain.Principal, accountID uuid.UUID) (io.ReadCloser, error)
}
