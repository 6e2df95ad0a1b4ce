package admin

import (
	"net/http"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/handler"
	"github.com/guttakrutt/guildsite/internal/service"
)

// ProgressHandler serves raid progress and content curation.
type ProgressHandler struct {
	progress *service.ProgressService
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(progress *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// UpsertBoss creates or refreshes a boss row by its identity.
func (h *ProgressHandler) UpsertBoss(w http.ResponseWriter, r *http.Request) {
	var b domain.RaidBoss
	if err := handler.DecodeJSON(r, &b); err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	out, err := h.progress.UpsertBoss(r.Context(), &b)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, out)
}

// UpdateBoss applies a partial update to a boss row.
func (h *ProgressHandler) UpdateBoss(w http.ResponseWriter, r *http.Request) {
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

	updated, err := h.progress.UpdateBoss(r.Context(), id, fields)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, updated)
}

// DeleteBoss removes a boss row.
func (h *ProgressHandler) DeleteBoss(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if err := h.progress.DeleteBoss(r.Context(), id); err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListExpansions returns all expansions.
func (h *ProgressHandler) ListExpansions(w http.ResponseWriter, r *http.Request) {
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"expansions": h.progress.ListExpansions(r.Context()),
	})
}

// CreateExpansion inserts an expansion.
func (h *ProgressHandler) CreateExpansion(w http.ResponseWriter, r *http.Request) {
	var e domain.Expansion
	if err := handler.DecodeJSON(r, &e); err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	created, err := h.progress.CreateExpansion(r.Context(), &e)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, created)
}

// SetActiveExpansion makes one expansion the active one.
func (h *ProgressHandler) SetActiveExpansion(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if err := h.progress.SetActiveExpansion(r.Context(), id); err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "active"})
}

// ListTiers returns raid tiers for the expansion in the path.
func (h *ProgressHandler) ListTiers(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"tiers": h.progress.ListTiers(r.Context(), id),
	})
}

// CreateTier inserts a raid tier.
func (h *ProgressHandler) CreateTier(w http.ResponseWriter, r *http.Request) {
	var t domain.RaidTier
	if err := handler.DecodeJSON(r, &t); err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	created, err := h.progress.CreateTier(r.Context(), &t)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, created)
}

// SetCurrentTier makes one tier the current one.
func (h *ProgressHandler) SetCurrentTier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if err := h.progress.SetCurrentTier(r.Context(), id); err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "current"})
}
