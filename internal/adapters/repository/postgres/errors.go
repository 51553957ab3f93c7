package postgres

import (
	"errors"

	"github.com/lib/pq"

	"github.com/ballothub/ballot/internal/core/domain"
)

// Postgres class 23 integrity-violation codes.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// mapConstraintError turns integrity-constraint violations into the domain
// error for the constraint that fired. The constraints are the authoritative
// enforcement of the one-vote / unique-identity invariants; application-level
// pre-checks only exist to give earlier, nicer messages.
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case uniqueViolation:
		switch pqErr.Constraint {
		case "accounts_username_key":
			return domain.ErrUsernameTaken
		case "accounts_email_key":
			return domain.ErrEmailTaken
		case "accounts_document_key":
			return domain.ErrDocumentTaken
		case "votes_account_key":
			return domain.ErrAlreadyVoted
		case "votes_confirmation_code_key":
			// A 128-bit random code collided; the caller may simply retry.
			return domain.ErrDuplicateCode
		}
	case foreignKeyViolation:
		// A cast racing a delete of its candidate or account.
		switch pqErr.Constraint {
		case "votes_candidate_id_fkey":
			return domain.ErrCandidateNotFound
		case "votes_account_id_fkey":
			return domain.ErrAccountNotFound
		}
	}
	return err
}
