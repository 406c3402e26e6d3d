package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// AuthHandler owns login and logout.
type AuthHandler struct {
	sessions *SessionStore
	logger   *zap.Logger
}

func NewAuthHandler(sessions *SessionStore, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, logger: logger}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login checks the shared back-office password and issues a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readBodyJSON(r, 1<<16, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Fail("invalid request body"))
		return
	}
	if !h.sessions.CheckPassword(req.Password) {
		h.logger.Warn("login rejected", zap.String("remote_addr", r.RemoteAddr))
		writeJSON(w, http.StatusUnauthorized, Fail("wrong password"))
		return
	}
	token, err := h.sessions.Create(r.Context())
	if err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail("failed to create session"))
		return
	}
	h.logger.Info("login succeeded", zap.String("remote_addr", r.RemoteAddr))
	writeJSON(w, http.StatusOK, Ok(loginResponse{Token: token}))
}

// Logout revokes the caller's session token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token != "" {
		if err := h.sessions.Destroy(r.Context(), token); err != nil {
			h.logger.Warn("failed to destroy session", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}
