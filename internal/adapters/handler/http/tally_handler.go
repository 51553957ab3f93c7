package http

import (
	"net/http"

	"github.com/ballothub/ballot/internal/core/ports"
)

type TallyHandler struct {
	tally ports.TallyService
}

func NewTallyHandler(tally ports.TallyService) *TallyHandler {
	return &TallyHandler{tally: tally}
}

func (h *TallyHandler) Results(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r)

	report, err := h.tally.Results(r.Context(), principal)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *TallyHandler) Stats(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r)

	stats, err := h.tally.Stats(r.Context(), principal)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
