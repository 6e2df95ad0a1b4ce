package handler

import (
	"encoding/json"
	"net/http"

	"github.com/guttakrutt/guildsite/internal/repository"
)

// HealthHandler returns a health check endpoint reporting the active dialect.
func HealthHandler(store repository.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"dialect": string(store.Dialect()),
		})
	}
}
