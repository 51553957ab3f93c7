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

type ElectionRepository struct {
	db *sql.DB
}

func NewElectionRepository(db *sql.DB) ports.ElectionRepository {
	return &ElectionRepository{db: db}
}

const electionColumns = `id, title, description, starts_at, ends_at, active, created_at`

func (r *ElectionRepository) Create(ctx context.Context, election *domain.Election) error {
	query := `
		INSERT INTO elections (id, title, description, starts_at, ends_at, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		election.ID, election.Title, election.Description,
		election.StartsAt, election.EndsAt, election.Active, election.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create election: %w", err)
	}
	return nil
}

func (r *ElectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Election, error) {
	query := `SELECT ` + electionColumns + ` FROM elections WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *ElectionRepository) GetActive(ctx context.Context) (*domain.Election, error) {
	query := `SELECT ` + electionColumns + ` FROM elections WHERE active = TRUE`
	return r.scanOne(r.db.QueryRowContext(ctx, query))
}

func (r *ElectionRepository) List(ctx context.Context) ([]domain.Election, error) {
	query := `SELECT ` + electionColumns + ` FROM elections ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list elections: %w", err)
	}
	defer rows.Close()

	var elections []domain.Election
	for rows.Next() {
		var e domain.Election
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.StartsAt, &e.EndsAt, &e.Active, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan election: %w", err)
		}
		elections = append(elections, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating elections: %w", err)
	}
	return elections, nil
}

func (r *ElectionRepository) Update(ctx context.Context, election *domain.Election) error {
	query := `UPDATE elections SET title = $2, description = $3, starts_at = $4, ends_at = $5 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		election.ID, election.Title, election.Description, election.StartsAt, election.EndsAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update election: %w", err)
	}
	return requireAffected(res, domain.ErrElectionNotFound)
}

func (r *ElectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM elections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete election: %w", err)
	}
	return requireAffected(res, domain.ErrElectionNotFound)
}

// Activate flips every other election inactive and the target active inside
// one transaction, so there is never a window with zero or two active
// elections.
func (r *ElectionRepository) Activate(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `UPDATE elections SET active = FALSE WHERE active = TRUE AND id <> $1`, id); err != nil {
		return fmt.Errorf("failed to deactivate elections: %w", err)
	}

	res, err := tx.ExecContext(ctx, `UPDATE elections SET active = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to activate election: %w", err)
	}
	if err := requireAffected(res, domain.ErrElectionNotFound); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit activation: %w", err)
	}
	return nil
}

func (r *ElectionRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `UPDATE elections SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate election: %w", err)
	}
	return requireAffected(res, domain.ErrElectionNotFound)
}

func (r *ElectionRepository) scanOne(row *sql.Row) (*domain.Election, error) {
	election := &domain.Election{}
	err := row.Scan(
		&election.ID, &election.Title, &election.Description,
		&election.StartsAt, &election.EndsAt, &election.Active, &election.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan election: %w", err)
	}
	return election, nil
}
