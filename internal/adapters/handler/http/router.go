package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ballothub/ballot/internal/core/ports"
)

type Handlers struct {
	Auth      *AuthHandler
	Account   *AccountHandler
	Candidate *CandidateHandler
	Election  *ElectionHandler
	Vote      *VoteHandler
	Tally     *TallyHandler
}

func NewHandler(h Handlers, auth ports.AuthService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/auth/register", h.Auth.Register)
	r.Post("/auth/login", h.Auth.Login)
	r.Post("/auth/logout", h.Auth.Logout)

	r.Route("/api", func(r chi.Router) {
		// Public surface.
		r.Get("/candidates", h.Candidate.List)
		r.Get("/candidates/{id}", h.Candidate.Get)
		r.Get("/elections/active", h.Election.Active)
		r.Get("/votes/verify/{code}", h.Vote.Verify)

		// Authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(Authenticator(auth))
			r.Get("/me", h.Account.Me)
			r.Get("/me/vote", h.Vote.MyVote)
			r.Post("/votes", h.Vote.Cast)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(Authenticator(auth))
		r.Use(RequireAdmin)

		r.Get("/accounts", h.Account.List)
		r.Post("/accounts/{id}/approve", h.Account.Approve)
		r.Post("/accounts/{id}/reject", h.Account.Reject)
		r.Post("/accounts/{id}/promote", h.Account.Promote)
		r.Get("/accounts/{id}/id-proof", h.Account.IDProof)

		r.Post("/candidates", h.Candidate.Create)
		r.Put("/candidates/{id}", h.Candidate.Update)
		r.Delete("/candidates/{id}", h.Candidate.Delete)

		r.Get("/elections", h.Election.List)
		r.Post("/elections", h.Election.Create)
		r.Put("/elections/{id}", h.Election.Update)
		r.Delete("/elections/{id}", h.Election.Delete)
		r.Post("/elections/{id}/activate", h.Election.Activate)
		r.Post("/elections/{id}/deactivate", h.Election.Deactivate)

		r.Get("/results", h.Tally.Results)
		r.Get("/stats", h.Tally.Stats)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
