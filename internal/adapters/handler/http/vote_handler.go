package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ballothub/ballot/internal/core/ports"
	"github.com/ballothub/ballot/internal/metrics"
)

type VoteHandler struct {
	votes   ports.VoteService
	metrics *metrics.Metrics
}

func NewVoteHandler(votes ports.VoteService, m *metrics.Metrics) *VoteHandler {
	return &VoteHandler{votes: votes, metrics: m}
}

type castRequest struct {
	CandidateID uuid.UUID `json:"candidate_id"`
}

// Cast records the caller's single ballot. The confirmation code in the
// response is the voter's receipt; it is shown here and retrievable via the
// public verify endpoint.
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing principal"})
		return
	}

	req, ok := decodeJSON[castRequest](w, r)
	if !ok {
		return
	}

	vote, err := h.votes.Cast(r.Context(), principal, req.CandidateID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.metrics.VotesCast.Inc()
	writeJSON(w, http.StatusCreated, vote)
}

// Verify is public: anyone holding a confirmation code can see the vote it
// confirms, the candidate, and the voter's username.
func (h *VoteHandler) Verify(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	receipt, err := h.votes.VerifyByCode(r.Context(), code)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.metrics.ReceiptLookups.Inc()
	writeJSON(w, http.StatusOK, receipt)
}

func (h *VoteHandler) MyVote(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing principal"})
		return
	}

	receipt, err := h.votes.VoteForAccount(r.Context(), principal.AccountID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, receipt)
}
