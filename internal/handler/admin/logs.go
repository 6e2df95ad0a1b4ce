package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/guttakrutt/guildsite/internal/auth"
	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/handler"
	"github.com/guttakrutt/guildsite/internal/service"
)

// LogsHandler serves the operational log and media records.
type LogsHandler struct {
	audit  *service.AuditService
	admins *service.AdminService
}

// NewLogsHandler creates a LogsHandler.
func NewLogsHandler(audit *service.AuditService, admins *service.AdminService) *LogsHandler {
	return &LogsHandler{audit: audit, admins: admins}
}

// List returns the newest log rows, honoring ?limit=.
func (h *LogsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"logs": h.audit.Recent(r.Context(), limit),
	})
}

// Delete removes one log row.
func (h *LogsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if err := h.audit.DeleteLog(r.Context(), id); err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type pruneRequest struct {
	Retention string `json:"retention"`
}

// Prune deletes rows older than the requested retention window.
func (h *LogsHandler) Prune(w http.ResponseWriter, r *http.Request) {
	var req pruneRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	retention, err := time.ParseDuration(req.Retention)
	if err != nil || retention <= 0 {
		handler.RespondError(w, domain.ErrValidation("invalid retention duration"))
		return
	}

	n, err := h.audit.Prune(r.Context(), retention)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]int64{"pruned": n})
}

// ListMedia returns uploaded-media records.
func (h *LogsHandler) ListMedia(w http.ResponseWriter, r *http.Request) {
	handler.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"media": h.admins.ListMedia(r.Context()),
	})
}

type mediaRequest struct {
	FileName  string `json:"file_name"`
	FilePath  string `json:"file_path"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
}

// CreateMedia records metadata for an uploaded file.
func (h *LogsHandler) CreateMedia(w http.ResponseWriter, r *http.Request) {
	var req mediaRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	adminID, err := auth.AdminIDFromContext(r.Context())
	if err != nil {
		handler.RespondError(w, err)
		return
	}

	created, err := h.admins.CreateMedia(r.Context(), &domain.MediaFile{
		FileName:   req.FileName,
		FilePath:   req.FilePath,
		MimeType:   req.MimeType,
		SizeBytes:  req.SizeBytes,
		UploadedBy: &adminID,
	})
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, created)
}

// DeleteMedia removes a media record.
func (h *LogsHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	if err := h.admins.DeleteMedia(r.Context(), id); err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
