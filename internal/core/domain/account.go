package domain

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType is the closed enumeration of accepted identity documents.
type DocumentType string

const (
	DocumentNationalID DocumentType = "national_id"
	DocumentVoterID    DocumentType = "voter_id"
	DocumentTaxID      DocumentType = "tax_id"
)

type Account struct {
	ID             uuid.UUID    `json:"id"`
	Username       string       `json:"username"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"`
	Admin          bool         `json:"admin"`
	DocumentType   DocumentType `json:"document_type,omitempty"`
	DocumentNumber string       `json:"document_number,omitempty"`
	ProofRef       string       `json:"-"`
	Verified       bool         `json:"verified"`
	CreatedAt      time.Time    `json:"created_at"`
}

// Principal is the authenticated caller, threaded explicitly through every
// operation that needs one. It is never read from ambient state.
type Principal struct {
	AccountID uuid.UUID
	Username  string
	Admin     bool
}
