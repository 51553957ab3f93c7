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

type VoteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) Create(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, account_id, candidate_id, confirmation_code, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		vote.ID, vote.AccountID, vote.CandidateID, vote.ConfirmationCode, vote.CreatedAt,
	)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *VoteRepository) GetByAccount(ctx context.Context, accountID uuid.UUID) (*domain.Vote, error) {
	query := `SELECT id, account_id, candidate_id, confirmation_code, created_at FROM votes WHERE account_id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, accountID))
}

func (r *VoteRepository) GetByCode(ctx context.Context, code string) (*domain.Vote, error) {
	query := `SELECT id, account_id, candidate_id, confirmation_code, created_at FROM votes WHERE confirmation_code = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, code))
}

func (r *VoteRepository) scanOne(row *sql.Row) (*domain.Vote, error) {
	vote := &domain.Vote{}
	err := row.Scan(&vote.ID, &vote.AccountID, &vote.CandidateID, &vote.ConfirmationCode, &vote.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan vote: %w", err)
	}
	return vote, nil
}
