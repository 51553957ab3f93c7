package http

import (
	"net/http"
	"time"

	"github.com/ballothub/ballot/internal/core/ports"
)

type ElectionHandler struct {
	elections ports.ElectionService
}

func NewElectionHandler(elections ports.ElectionService) *ElectionHandler {
	return &ElectionHandler{elections: elections}
}

type electionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
}

func (h *ElectionHandler) Active(w http.ResponseWriter, r *http.Request) {
	election, err := h.elections.Active(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, election)
}

func (h *ElectionHandler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r)

	elections, err := h.elections.List(r.Context(), principal)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, elections)
}

func (h *ElectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r)

	req, ok := decodeJSON[electionRequest](w, r)
	if !ok {
		return
	}

	election, err := h.elections.Create(r.Context(), principal, ports.ElectionInput{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, election)
}

func (h *ElectionHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r)
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	req, ok := decodeJSON[electionRequest](w, r)
	if !ok {
		return
	}

	election, err := h.elections.Update(r.Context(), principal, id, ports.ElectionInput{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, election)
}

func (h *ElectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r)
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.elections.Delete(r.Context(), principal, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *ElectionHandler) Activate(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r)
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.elections.Activate(r.Context(), principal, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "activated"})
}

func (h *ElectionHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r)
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.elections.Deactivate(r.Context(), principal, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated"})
}
