package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ballothub/ballot/internal/core/domain"
	"github.com/ballothub/ballot/internal/core/ports"
)

func validRegisterInput() ports.RegisterInput {
	return ports.RegisterInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
		DocumentType:    domain.DocumentNationalID,
		DocumentNumber:  "123456789012",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending account with hashed password", func(t *testing.T) {
		accounts := newMemAccounts()
		svc := NewRegistrationService(accounts, newMemArtifacts(), true)

		account, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		assert.False(t, account.Verified)
		assert.False(t, account.Admin)
		assert.NotEqual(t, "s3cret-pass", account.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("s3cret-pass")))
	})

	t.Run("rejects password mismatch before anything else", func(t *testing.T) {
		svc := NewRegistrationService(newMemAccounts(), newMemArtifacts(), true)

		input := validRegisterInput()
		input.ConfirmPassword = "different"
		_, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
	})

	t.Run("rejects taken username", func(t *testing.T) {
		accounts := newMemAccounts()
		svc := NewRegistrationService(accounts, newMemArtifacts(), true)

		_, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		input := validRegisterInput()
		input.Email = "other@example.com"
		input.DocumentNumber = "210987654321"
		_, err = svc.Register(ctx, input)
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		accounts := newMemAccounts()
		svc := NewRegistrationService(accounts, newMemArtifacts(), true)

		_, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		input := validRegisterInput()
		input.Username = "bob"
		input.DocumentNumber = "210987654321"
		_, err = svc.Register(ctx, input)
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("rejects invalid document format", func(t *testing.T) {
		svc := NewRegistrationService(newMemAccounts(), newMemArtifacts(), true)

		input := validRegisterInput()
		input.DocumentNumber = "12345"
		_, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, domain.ErrInvalidDocument)
	})

	t.Run("rejects already registered document", func(t *testing.T) {
		accounts := newMemAccounts()
		svc := NewRegistrationService(accounts, newMemArtifacts(), true)

		_, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		input := validRegisterInput()
		input.Username = "bob"
		input.Email = "bob@example.com"
		_, err = svc.Register(ctx, input)
		assert.ErrorIs(t, err, domain.ErrDocumentTaken)
	})

	t.Run("skips document checks when verification disabled", func(t *testing.T) {
		svc := NewRegistrationService(newMemAccounts(), newMemArtifacts(), false)

		input := validRegisterInput()
		input.DocumentType = ""
		input.DocumentNumber = ""
		_, err := svc.Register(ctx, input)
		assert.NoError(t, err)
	})

	t.Run("stores proof under derived name", func(t *testing.T) {
		artifacts := newMemArtifacts()
		svc := NewRegistrationService(newMemAccounts(), artifacts, true)

		input := validRegisterInput()
		input.Proof = strings.NewReader("jpeg bytes")
		account, err := svc.Register(ctx, input)
		require.NoError(t, err)

		require.NotEmpty(t, account.ProofRef)
		assert.True(t, strings.HasPrefix(account.ProofRef, "id_proofs/national_id_123456789012_"))

		rc, err := artifacts.Open(ctx, account.ProofRef)
		require.NoError(t, err)
		rc.Close()
	})
}

func TestApproveAndReject(t *testing.T) {
	ctx := context.Background()
	admin := domain.Principal{AccountID: uuid.New(), Username: "admin", Admin: true}
	voter := domain.Principal{AccountID: uuid.New(), Username: "mallory", Admin: false}

	t.Run("approve marks account verified and is idempotent", func(t *testing.T) {
		accounts := newMemAccounts()
		svc := NewRegistrationService(accounts, newMemArtifacts(), true)

		account, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		require.NoError(t, svc.Approve(ctx, admin, account.ID))
		require.NoError(t, svc.Approve(ctx, admin, account.ID))

		got, err := accounts.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.True(t, got.Verified)
	})

	t.Run("approve requires an administrator", func(t *testing.T) {
		svc := NewRegistrationService(newMemAccounts(), newMemArtifacts(), true)
		err := svc.Approve(ctx, voter, uuid.New())
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("approve unknown account", func(t *testing.T) {
		svc := NewRegistrationService(newMemAccounts(), newMemArtifacts(), true)
		err := svc.Approve(ctx, admin, uuid.New())
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("reject deletes account and proof artifact", func(t *testing.T) {
		accounts := newMemAccounts()
		artifacts := newMemArtifacts()
		svc := NewRegistrationService(accounts, artifacts, true)

		input := validRegisterInput()
		input.Proof = strings.NewReader("jpeg bytes")
		account, err := svc.Register(ctx, input)
		require.NoError(t, err)

		require.NoError(t, svc.Reject(ctx, admin, account.ID))

		got, err := accounts.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		_, err = artifacts.Open(ctx, account.ProofRef)
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	})

	t.Run("reject twice reports not found", func(t *testing.T) {
		accounts := newMemAccounts()
		svc := NewRegistrationService(accounts, newMemArtifacts(), true)

		account, err := svc.Register(ctx, validRegisterInput())
		require.NoError(t, err)

		require.NoError(t, svc.Reject(ctx, admin, account.ID))
		err = svc.Reject(ctx, admin, account.ID)
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestMakeAdmin(t *testing.T) {
	ctx := context.Background()
	admin := domain.Principal{AccountID: uuid.New(), Admin: true}

	accounts := newMemAccounts()
	svc := NewRegistrationService(accounts, newMemArtifacts(), true)

	account, err := svc.Register(ctx, validRegisterInput())
	require.NoError(t, err)

	require.NoError(t, svc.MakeAdmin(ctx, admin, account.ID))

	got, err := accounts.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, got.Admin)

	err = svc.MakeAdmin(ctx, domain.Principal{Admin: false}, account.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
