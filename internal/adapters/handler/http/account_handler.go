package http

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ballothub/ballot/internal/core/ports"
	"github.com/ballothub/ballot/internal/metrics"
)

type AccountHandler struct {
	registration ports.RegistrationService
	accounts     ports.AccountRepository
	metrics      *metrics.Metrics
}

func NewAccountHandler(registration ports.RegistrationService, accounts ports.AccountRepository, m *metrics.Metrics) *AccountHandler {
	return &AccountHandler{
		registration: registration,
		accounts:     accounts,
		metrics:      m,
	}
}

func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing principal"})
		return
	}

	account, err := h.accounts.GetByID(r.Context(), principal.AccountID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if account == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "account not found"})
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// List is the admin account listing; ?pending=true narrows it to accounts
// awaiting verification.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r)

	pendingOnly := r.URL.Query().Get("pending") == "true"
	accounts, err := h.registration.Accounts(r.Context(), principal, pendingOnly)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, accounts)
}

func (h *AccountHandler) Approve(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r)
	accountID, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.registration.Approve(r.Context(), principal, accountID); err != nil {
		writeDomainError(w, err)
		return
	}

	h.metrics.AccountsApproved.Inc()
	writeJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

func (h *AccountHandler) Reject(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r)
	accountID, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.registration.Reject(r.Context(), principal, accountID); err != nil {
		writeDomainError(w, err)
		return
	}

	h.metrics.AccountsRejected.Inc()
	writeJSON(w, http.StatusOK, map[string]string{"status": "rejected"})
}

func (h *AccountHandler) Promote(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r)
	accountID, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.registration.MakeAdmin(r.Context(), principal, accountID); err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "promoted"})
}

// IDProof streams the stored identity-proof image to an administrator for
// review. This is personally identifying material; access stays behind the
// admin gate and is the one place it leaves the store.
func (h *AccountHandler) IDProof(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r)
	accountID, ok := parseID(w, r)
	if !ok {
		return
	}

	artifact, err := h.registration.ProofArtifact(r.Context(), principal, accountID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	defer artifact.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, artifact); err != nil {
		// Too late for a status change; the copy failed mid-stream.
		return
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
