package handler

import (
	"net/http"

	"github.com/guttakrutt/guildsite/internal/service"
)

// GuildHandler serves the public guild pages.
type GuildHandler struct {
	guilds   *service.GuildService
	progress *service.ProgressService
}

// NewGuildHandler creates a GuildHandler.
func NewGuildHandler(guilds *service.GuildService, progress *service.ProgressService) *GuildHandler {
	return &GuildHandler{guilds: guilds, progress: progress}
}

// GetSummary returns the guild summary. Always 200; reads degrade to an
// empty summary on storage trouble so the frontend still renders.
func (h *GuildHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, h.guilds.Summary(r.Context()))
}

// GetRoster returns the roster ordered by rank.
func (h *GuildHandler) GetRoster(w http.ResponseWriter, r *http.Request) {
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"roster": h.guilds.Roster(r.Context()),
	})
}

// GetProgress returns raid progress for ?raid=...&difficulty=....
func (h *GuildHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	raid := r.URL.Query().Get("raid")
	difficulty := r.URL.Query().Get("difficulty")
	if difficulty == "" {
		difficulty = "mythic"
	}
	RespondJSON(w, http.StatusOK, h.progress.Progress(r.Context(), raid, difficulty))
}
