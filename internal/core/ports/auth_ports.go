package ports

import (
	"context"

	"github.com/ballothub/ballot/internal/core/domain"
)

type AuthService interface {
	// Authenticate verifies credentials and returns a signed session token
	// alongside the account. Unknown usernames and wrong passwords are
	// indistinguishable to the caller.
	Authenticate(ctx context.Context, username, password string) (string, *domain.Account, error)
	// Verify parses a session token back into the principal it was issued for.
	Verify(token string) (domain.Principal, error)
}
