package http

import (
	"io"
	"net/http"
	"strings"

	"github.com/ballothub/ballot/internal/core/domain"
	"github.com/ballothub/ballot/internal/core/ports"
	"github.com/ballothub/ballot/internal/metrics"
)

// 16MB cap on identity-proof uploads.
const maxUploadBytes = 16 << 20

type AuthHandler struct {
	registration ports.RegistrationService
	auth         ports.AuthService
	metrics      *metrics.Metrics
}

func NewAuthHandler(registration ports.RegistrationService, auth ports.AuthService, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		registration: registration,
		auth:         auth,
		metrics:      m,
	}
}

// Register accepts a multipart form so the identity proof can ride along
// with the account fields. Success yields a pending account, not a session.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var proof io.Reader
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
			return
		}
		if file, _, err := r.FormFile("id_proof"); err == nil {
			defer file.Close()
			proof = file
		}
	} else if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form"})
		return
	}

	input := ports.RegisterInput{
		Username:        r.FormValue("username"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
		DocumentType:    domain.DocumentType(r.FormValue("document_type")),
		DocumentNumber:  r.FormValue("document_number"),
		Proof:           proof,
	}

	account, err := h.registration.Register(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.metrics.Registrations.Inc()
	writeJSON(w, http.StatusCreated, account)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string          `json:"token"`
	Account *domain.Account `json:"account"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[loginRequest](w, r)
	if !ok {
		return
	}

	token, account, err := h.auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.metrics.FailedLogins.Inc()
		writeDomainError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, loginResponse{Token: token, Account: account})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
