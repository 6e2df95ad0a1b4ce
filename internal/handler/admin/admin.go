// Package admin holds the authenticated panel handlers. Every route in this
// package sits behind the admin JWT middleware.
package admin

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/guttakrutt/guildsite/internal/domain"
)

func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrValidation("invalid id")
	}
	return id, nil
}
