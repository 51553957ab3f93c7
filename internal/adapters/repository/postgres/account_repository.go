package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ballothub/ballot/internal/core/domain"
	"github.com/ballothub/ballot/internal/core/ports"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) ports.AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, username, email, password_hash, is_admin, document_type, document_number, id_proof_ref, verified, created_at`

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, username, email, password_hash, is_admin, document_type, document_number, id_proof_ref, verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		account.ID, account.Username, account.Email, account.PasswordHash,
		account.Admin, account.DocumentType, account.DocumentNumber,
		account.ProofRef, account.Verified, account.CreatedAt,
	)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *AccountRepository) GetByDocument(ctx context.Context, docType domain.DocumentType, number string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE document_type = $1 AND document_number = $2`
	return r.scanOne(r.db.QueryRowContext(ctx, query, docType, number))
}

func (r *AccountRepository) List(ctx context.Context, pendingOnly bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`
	if pendingOnly {
		query += ` WHERE verified = FALSE AND is_admin = FALSE`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := scanAccount(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) SetVerified(ctx context.Context, id uuid.UUID, verified bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET verified = $2 WHERE id = $1`, id, verified)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return requireAffected(res, domain.ErrAccountNotFound)
}

func (r *AccountRepository) SetAdmin(ctx context.Context, id uuid.UUID, admin bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET is_admin = $2 WHERE id = $1`, id, admin)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return requireAffected(res, domain.ErrAccountNotFound)
}

// Delete removes the account; its vote, if any, goes with it by cascade.
func (r *AccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return requireAffected(res, domain.ErrAccountNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner, a *domain.Account) error {
	return row.Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.Admin,
		&a.DocumentType, &a.DocumentNumber, &a.ProofRef, &a.Verified, &a.CreatedAt,
	)
}

func (r *AccountRepository) scanOne(row *sql.Row) (*domain.Account, error) {
	account := &domain.Account{}
	if err := scanAccount(row, account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	return account, nil
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
