package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/ballothub/ballot/internal/core/domain"
	"github.com/ballothub/ballot/internal/core/ports"
)

type contextKey string

// PrincipalKey carries the authenticated principal on the request context.
const PrincipalKey contextKey = "principal"

func principalFrom(r *http.Request) (domain.Principal, bool) {
	p, ok := r.Context().Value(PrincipalKey).(domain.Principal)
	return p, ok
}

// Authenticator resolves the session token from the access_token cookie or
// a bearer header into a principal. Requests without a valid session are
// rejected; public routes simply don't mount this middleware.
func Authenticator(auth ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ""
			if cookie, err := r.Cookie("access_token"); err == nil {
				token = cookie.Value
			}
			if token == "" {
				if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
					token = strings.TrimPrefix(header, "Bearer ")
				}
			}
			if token == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing session token"})
				return
			}

			principal, err := auth.Verify(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid session token"})
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a subtree to administrators. The response is the same
// generic forbidden used everywhere, leaking nothing about the target.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFrom(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing session token"})
			return
		}
		if !principal.Admin {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: domain.ErrUnauthorized.Error()})
			return
		}
		next.ServeHTTP(w, r)
	})
}
