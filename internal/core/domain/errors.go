package domain

import "errors"

// Sentinel errors crossing the service boundary. Repositories and services
// return these (optionally wrapped) so handlers can translate them with
// errors.Is into HTTP status codes.
var (
	// Validation
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidDocument  = errors.New("invalid identity document")
	ErrInvalidInput     = errors.New("invalid input")

	// Conflicts, backed by unique constraints in the store
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already registered")
	ErrDocumentTaken = errors.New("identity document already registered")
	ErrAlreadyVoted  = errors.New("account has already voted")
	ErrDuplicateCode = errors.New("confirmation code already issued")

	// Authentication / authorization
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrPendingVerification = errors.New("account is pending verification")
	ErrNotVerified         = errors.New("account is not verified")
	ErrUnauthorized        = errors.New("unauthorized")

	// Not found
	ErrAccountNotFound   = errors.New("account not found")
	ErrCandidateNotFound = errors.New("candidate not found")
	ErrElectionNotFound  = errors.New("election not found")
	ErrVoteNotFound      = errors.New("vote not found")
	ErrArtifactNotFound  = errors.New("artifact not found")

	// Voting state
	ErrNoActiveElection = errors.New("no active election")
	ErrVotingClosed     = errors.New("voting is not open")

	ErrInternal = errors.New("internal server error")
)
