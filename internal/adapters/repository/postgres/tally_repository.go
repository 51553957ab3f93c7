package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ballothub/ballot/internal/core/domain"
	"github.com/ballothub/ballot/internal/core/ports"
)

type TallyRepository struct {
	db *sql.DB
}

func NewTallyRepository(db *sql.DB) ports.TallyRepository {
	return &TallyRepository{db: db}
}

// CountByCandidate returns one row per candidate, zero-vote candidates
// included, ordered by candidate insertion order. The service layer sorts by
// count; the stable sort preserves this order among ties.
func (r *TallyRepository) CountByCandidate(ctx context.Context) ([]domain.CandidateCount, error) {
	query := `
		SELECT c.id, c.name, c.party, c.bio, c.image_ref, c.position, c.created_at, COUNT(v.id)
		FROM candidates c
		LEFT JOIN votes v ON v.candidate_id = c.id
		GROUP BY c.id, c.name, c.party, c.bio, c.image_ref, c.position, c.created_at
		ORDER BY c.position
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	var counts []domain.CandidateCount
	for rows.Next() {
		var cc domain.CandidateCount
		if err := rows.Scan(
			&cc.Candidate.ID, &cc.Candidate.Name, &cc.Candidate.Party,
			&cc.Candidate.Bio, &cc.Candidate.ImageRef, &cc.Candidate.Position,
			&cc.Candidate.CreatedAt, &cc.Votes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tally row: %w", err)
		}
		counts = append(counts, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tally rows: %w", err)
	}
	return counts, nil
}

func (r *TallyRepository) TotalVotes(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return n, nil
}

func (r *TallyRepository) TotalVoters(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE is_admin = FALSE`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count voters: %w", err)
	}
	return n, nil
}

func (r *TallyRepository) PendingVerifications(ctx context.Context) (int64, error) {
	var n int64
	query := `SELECT COUNT(*) FROM accounts WHERE is_admin = FALSE AND verified = FALSE`
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pending verifications: %w", err)
	}
	return n, nil
}
