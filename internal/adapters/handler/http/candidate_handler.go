package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/ballothub/ballot/internal/core/ports"
)

type CandidateHandler struct {
	candidates ports.CandidateService
}

func NewCandidateHandler(candidates ports.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidates: candidates}
}

func (h *CandidateHandler) List(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidates.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

func (h *CandidateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	candidate, err := h.candidates.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

func (h *CandidateHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r)

	input, cleanup, ok := candidateInput(w, r)
	defer cleanup()
	if !ok {
		return
	}

	candidate, err := h.candidates.Create(r.Context(), principal, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, candidate)
}

func (h *CandidateHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r)
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	input, cleanup, ok := candidateInput(w, r)
	defer cleanup()
	if !ok {
		return
	}

	candidate, err := h.candidates.Update(r.Context(), principal, id, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

func (h *CandidateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := principalFrom(r)
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.candidates.Delete(r.Context(), principal, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// candidateInput reads the candidate fields plus the optional portrait from
// a multipart form, or from a plain form when no image is being uploaded.
// The cleanup closes the uploaded file and must run after the input is used.
func candidateInput(w http.ResponseWriter, r *http.Request) (ports.CandidateInput, func(), bool) {
	var image io.Reader
	cleanup := func() {}
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
			return ports.CandidateInput{}, cleanup, false
		}
		if file, _, err := r.FormFile("image"); err == nil {
			image = file
			cleanup = func() { file.Close() }
		}
	} else if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form"})
		return ports.CandidateInput{}, cleanup, false
	}

	return ports.CandidateInput{
		Name:  r.FormValue("name"),
		Party: r.FormValue("party"),
		Bio:   r.FormValue("bio"),
		Image: image,
	}, cleanup, true
}
