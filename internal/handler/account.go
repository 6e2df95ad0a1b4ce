package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/guttakrutt/guildsite/internal/auth"
	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/service"
)

// AccountHandler serves the logged-in user's character links.
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler creates an AccountHandler.
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

func characterIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation("invalid character id")
	}
	return id, nil
}

// ListCharacters returns the caller's linked characters.
func (h *AccountHandler) ListCharacters(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"characters": h.accounts.Characters(r.Context(), userID),
	})
}

// LinkCharacter links a roster character to the caller's account.
func (h *AccountHandler) LinkCharacter(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	charID, err := characterIDParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	linked, err := h.accounts.LinkCharacter(r.Context(), userID, charID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, linked)
}

// UnlinkCharacter removes one of the caller's character links.
func (h *AccountHandler) UnlinkCharacter(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	charID, err := characterIDParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.accounts.UnlinkCharacter(r.Context(), userID, charID); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "unlinked"})
}

// SetMain marks one linked character as the caller's main.
func (h *AccountHandler) SetMain(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		RespondError(w, err)
		return
	}
	charID, err := characterIDParam(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	if err := h.accounts.SetMain(r.Context(), userID, charID); err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "main_set"})
}
