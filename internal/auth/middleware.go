package auth

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/guttakrutt/guildsite/internal/domain"
)

type contextKeyType string

const (
	adminIDKey contextKeyType = "admin_id"
	userIDKey  contextKeyType = "user_id"
)

// AuthenticateAdmin requires a valid admin-realm bearer token.
func AuthenticateAdmin(m *JWTManager) func(http.Handler) http.Handler {
	return authenticate(m, RealmAdmin, adminIDKey)
}

// AuthenticateUser requires a valid user-realm bearer token.
func AuthenticateUser(m *JWTManager) func(http.Handler) http.Handler {
	return authenticate(m, RealmUser, userIDKey)
}

func authenticate(m *JWTManager, realm Realm, key contextKeyType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				respondUnauthorized(w, "missing bearer token")
				return
			}

			claims, err := m.ValidateTokenForRealm(token, realm)
			if err != nil {
				respondUnauthorized(w, "invalid token")
				return
			}

			id, err := strconv.ParseInt(claims.Subject, 10, 64)
			if err != nil {
				respondUnauthorized(w, "invalid token subject")
				return
			}

			ctx := context.WithValue(r.Context(), key, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return h[7:]
	}
	return ""
}

func respondUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"code":"UNAUTHORIZED","message":"` + msg + `"}`))
}

// AdminIDFromContext returns the authenticated admin id, or an error if the
// request did not pass AuthenticateAdmin.
func AdminIDFromContext(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(adminIDKey).(int64)
	if !ok {
		return 0, domain.ErrUnauthorized("admin authentication required")
	}
	return id, nil
}

// UserIDFromContext returns the authenticated user id.
func UserIDFromContext(ctx context.Context) (int64, error) {
	id, ok := ctx.Value(userIDKey).(int64)
	if !ok {
		return 0, domain.ErrUnauthorized("user authentication required")
	}
	return id, nil
}
