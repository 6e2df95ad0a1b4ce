package admin

import (
	"net/http"

	"github.com/guttakrutt/guildsite/internal/auth"
	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/handler"
	"github.com/guttakrutt/guildsite/internal/service"
)

// AccountsHandler serves panel account management.
type AccountsHandler struct {
	admins *service.AdminService
}

// NewAccountsHandler creates an AccountsHandler.
func NewAccountsHandler(admins *service.AdminService) *AccountsHandler {
	return &AccountsHandler{admins: admins}
}

// List returns all panel accounts.
func (h *AccountsHandler) List(w http.ResponseWriter, r *http.Request) {
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"admins": h.admins.ListAdmins(r.Context()),
	})
}

type createAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Create adds a panel account.
func (h *AccountsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAdminRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	created, err := h.admins.CreateAdmin(r.Context(), req.Username, req.Password)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, created)
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

// ChangePassword replaces an account's password.
func (h *AccountsHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	var req changePasswordRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	if err := h.admins.ChangePassword(r.Context(), id, req.Password); err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// Delete removes a panel account. Self-deletion is refused.
func (h *AccountsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	callerID, err := auth.AdminIDFromContext(r.Context())
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	if err := h.admins.DeleteAdmin(r.Context(), id, callerID); err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Dashboard returns the panel landing-page counters.
func (h *AccountsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	handler.RespondJSON(w, http.StatusOK, h.admins.DashboardStats(r.Context()))
}
