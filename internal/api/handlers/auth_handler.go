package handlers

import (
	"net/http"
	"time"

	"github.com/isdelr/interview-vault-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration, login and profile requests.
type AuthHandler struct {
	service      services.AuthServiceProvider
	tokenTTL     time.Duration
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler. The token cookie lives for
// tokenTTL and is marked Secure when secureCookie is set.
func NewAuthHandler(service services.AuthServiceProvider, tokenTTL time.Duration, secureCookie bool) *AuthHandler {
	return &AuthHandler{service: service, tokenTTL: tokenTTL, secureCookie: secureCookie}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"fullName" validate:"max=100"`
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := decodeAndValidate(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.service.Register(r.Context(), payload.Username, payload.Email, payload.Password, payload.FullName)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		writeError(w, r, err)
		return
	}

	h.setTokenCookie(w, res.Token)
	writeJSON(w, http.StatusCreated, res)
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := decodeAndValidate(w, r, &payload); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", payload.Username).Msg("Failed authentication attempt")
		writeError(w, r, err)
		return
	}

	h.setTokenCookie(w, res.Token)
	writeJSON(w, http.StatusOK, res)
}

// Me returns the profile of the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerFromRequest(r)
	if !ok {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	user, err := h.service.GetUser(r.Context(), caller.Username)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.tokenTTL),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
}
