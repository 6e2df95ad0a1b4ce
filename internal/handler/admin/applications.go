package admin

import (
	"net/http"

	"github.com/guttakrutt/guildsite/internal/auth"
	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/handler"
	"github.com/guttakrutt/guildsite/internal/service"
)

// ApplicationsHandler serves recruitment review.
type ApplicationsHandler struct {
	recruitment *service.RecruitmentService
}

// NewApplicationsHandler creates an ApplicationsHandler.
func NewApplicationsHandler(recruitment *service.RecruitmentService) *ApplicationsHandler {
	return &ApplicationsHandler{recruitment: recruitment}
}

// List returns applications, optionally filtered by ?status=.
func (h *ApplicationsHandler) List(w http.ResponseWriter, r *http.Request) {
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"applications": h.recruitment.List(r.Context(), r.URL.Query().Get("status")),
	})
}

// Get returns one application with its comments.
func (h *ApplicationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	app, comments, err := h.recruitment.Get(r.Context(), id)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"application": app,
		"comments":    comments,
	})
}

type reviewRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// Review approves or rejects an application.
func (h *ApplicationsHandler) Review(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	adminID, err := auth.AdminIDFromContext(r.Context())
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	var req reviewRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	updated, err := h.recruitment.Review(r.Context(), id, req.Status, adminID, req.Notes)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, updated)
}

type commentRequest struct {
	Comment string `json:"comment"`
}

// Comment adds an admin note to an application.
func (h *ApplicationsHandler) Comment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	adminID, err := auth.AdminIDFromContext(r.Context())
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	var req commentRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	created, err := h.recruitment.Comment(r.Context(), id, adminID, req.Comment)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, created)
}
