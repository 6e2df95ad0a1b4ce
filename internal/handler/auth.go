package handler

import (
	"net/http"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/service"
)

// AuthHandler serves admin login.
type AuthHandler struct {
	admins *service.AdminService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(admins *service.AdminService) *AuthHandler {
	return &AuthHandler{admins: admins}
}

// Login authenticates an admin and returns a JWT.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := DecodeJSON(r, &input); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	res, err := h.admins.Login(r.Context(), input)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, res)
}

type logoutRequest struct {
	SessionToken string `json:"session_token"`
}

// Logout revokes the server-side session created at login.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	if err := h.admins.Logout(r.Context(), req.SessionToken); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
