// Package identity validates government identity-document formats. The
// checks are pure and stateless; a failure is always a recoverable
// validation error naming the expected format.
package identity

import (
	"fmt"
	"regexp"

	"github.com/ballothub/ballot/internal/core/domain"
)

var (
	nationalIDPattern = regexp.MustCompile(`^\d{12}$`)
	voterIDPattern    = regexp.MustCompile(`^[A-Z]{3}\d{7}$`)
	taxIDPattern      = regexp.MustCompile(`^[A-Z]{5}\d{4}[A-Z]$`)
)

// Validate checks number against the format for the given document type.
// The returned error wraps domain.ErrInvalidDocument and names the expected
// format so it can be surfaced to the user as-is.
func Validate(docType domain.DocumentType, number string) error {
	switch docType {
	case domain.DocumentNationalID:
		if !nationalIDPattern.MatchString(number) {
			return fmt.Errorf("%w: national ID must be exactly 12 digits", domain.ErrInvalidDocument)
		}
	case domain.DocumentVoterID:
		if !voterIDPattern.MatchString(number) {
			return fmt.Errorf("%w: voter ID must be 3 uppercase letters followed by 7 digits", domain.ErrInvalidDocument)
		}
	case domain.DocumentTaxID:
		if !taxIDPattern.MatchString(number) {
			return fmt.Errorf("%w: tax ID must be 5 uppercase letters, 4 digits and 1 uppercase letter", domain.ErrInvalidDocument)
		}
	default:
		return fmt.Errorf("%w: unknown document type %q", domain.ErrInvalidDocument, docType)
	}
	return nil
}
