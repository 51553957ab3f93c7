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

type CandidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) ports.CandidateRepository {
	return &CandidateRepository{db: db}
}

func (r *CandidateRepository) Create(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		INSERT INTO candidates (id, name, party, bio, image_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING position
	`
	err := r.db.QueryRowContext(ctx, query,
		candidate.ID, candidate.Name, candidate.Party, candidate.Bio,
		candidate.ImageRef, candidate.CreatedAt,
	).Scan(&candidate.Position)
	if err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

func (r *CandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	query := `SELECT id, name, party, bio, image_ref, position, created_at FROM candidates WHERE id = $1`
	candidate := &domain.Candidate{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&candidate.ID, &candidate.Name, &candidate.Party, &candidate.Bio,
		&candidate.ImageRef, &candidate.Position, &candidate.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan candidate: %w", err)
	}
	return candidate, nil
}

func (r *CandidateRepository) List(ctx context.Context) ([]domain.Candidate, error) {
	query := `SELECT id, name, party, bio, image_ref, position, created_at FROM candidates ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Party, &c.Bio, &c.ImageRef, &c.Position, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return candidates, nil
}

func (r *CandidateRepository) Update(ctx context.Context, candidate *domain.Candidate) error {
	query := `UPDATE candidates SET name = $2, party = $3, bio = $4, image_ref = $5 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		candidate.ID, candidate.Name, candidate.Party, candidate.Bio, candidate.ImageRef,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	return requireAffected(res, domain.ErrCandidateNotFound)
}

// Delete removes the candidate; every vote referencing it goes with it by
// cascade.
func (r *CandidateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	return requireAffected(res, domain.ErrCandidateNotFound)
}
