package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/welitoonl/tamagochi-pos/internal/auth"
	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

type AuthHandler struct {
	authenticator *auth.Authenticator
	sessions      *auth.SessionStore
}

func NewAuthHandler(authenticator *auth.Authenticator, sessions *auth.SessionStore) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		sessions:      sessions,
	}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponseDTO struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	token := h.sessions.Create(*user)
	respondJSON(w, http.StatusOK, LoginResponseDTO{Token: token, User: *user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		h.sessions.Delete(token)
	}
	w.WriteHeader(http.StatusNoContent)
}
