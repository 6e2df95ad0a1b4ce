package admin

import (
	"net/http"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/handler"
	"github.com/guttakrutt/guildsite/internal/service"
)

// RosterHandler serves roster curation.
type RosterHandler struct {
	guilds *service.GuildService
}

// NewRosterHandler creates a RosterHandler.
func NewRosterHandler(guilds *service.GuildService) *RosterHandler {
	return &RosterHandler{guilds: guilds}
}

// CreateGuild registers the tracked guild.
func (h *RosterHandler) CreateGuild(w http.ResponseWriter, r *http.Request) {
	var g domain.Guild
	if err := handler.DecodeJSON(r, &g); err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	created, err := h.guilds.CreateGuild(r.Context(), &g)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, created)
}

// UpdateGuild applies a partial update to the guild.
func (h *RosterHandler) UpdateGuild(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	var fields map[string]interface{}
	if err := handler.DecodeJSON(r, &fields); err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	updated, err := h.guilds.UpdateGuild(r.Context(), id, fields)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, updated)
}

// CreateCharacter adds a roster character.
func (h *RosterHandler) CreateCharacter(w http.ResponseWriter, r *http.Request) {
	var c domain.Character
	if err := handler.DecodeJSON(r, &c); err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	created, err := h.guilds.AddCharacter(r.Context(), &c)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, created)
}

// UpdateCharacter applies a partial update to a character.
func (h *RosterHandler) UpdateCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	var fields map[string]interface{}
	if err := handler.DecodeJSON(r, &fields); err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	updated, err := h.guilds.UpdateCharacter(r.Context(), id, fields)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, updated)
}

// RemoveFromRoster flags a character as out of the roster, keeping the row.
func (h *RosterHandler) RemoveFromRoster(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if err := h.guilds.RemoveFromRoster(r.Context(), id); err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// DeleteCharacter removes a character row entirely.
func (h *RosterHandler) DeleteCharacter(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if err := h.guilds.DeleteCharacter(r.Context(), id); err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
