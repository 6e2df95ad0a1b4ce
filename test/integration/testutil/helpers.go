//go:build integration

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/guttakrutt/guildsite/internal/auth"
	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin inserts an admin user directly and returns its id.
func (env *TestEnv) SeedAdmin(username, password string) int64 {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		env.t.Fatalf("SeedAdmin: hash: %v", err)
	}

	var id int64
	err = env.Pool.QueryRow(ctx,
		`INSERT INTO admin_users ("username", "passwordHash") VALUES ($1, $2) RETURNING "id"`,
		username, string(hash)).Scan(&id)
	if err != nil {
		env.t.Fatalf("SeedAdmin: insert: %v", err)
	}
	return id
}

// LoginAdmin authenticates an admin and returns the JWT.
func (env *TestEnv) LoginAdmin(username, password string) string {
	env.t.Helper()
	resp := env.POST("/admin/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		env.t.Fatalf("LoginAdmin: expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		env.t.Fatalf("LoginAdmin: decode: %v", err)
	}
	return result.Token
}

// SeedGuild inserts a guild row directly and returns its id.
func (env *TestEnv) SeedGuild(name, realm string) int64 {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := env.Pool.QueryRow(ctx,
		`INSERT INTO guilds ("name", "realm", "region", "faction") VALUES ($1, $2, 'eu', 'Horde') RETURNING "id"`,
		name, realm).Scan(&id)
	if err != nil {
		env.t.Fatalf("SeedGuild: insert: %v", err)
	}
	return id
}

// SeedCharacter inserts a roster character directly and returns its id.
func (env *TestEnv) SeedCharacter(guildID int64, name, class string, rank int) int64 {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := env.Pool.QueryRow(ctx,
		`INSERT INTO characters ("guildId", "name", "realm", "class", "rank", "level")
		 VALUES ($1, $2, 'Tarren Mill', $3, $4, 80) RETURNING "id"`,
		guildID, name, class, rank).Scan(&id)
	if err != nil {
		env.t.Fatalf("SeedCharacter: insert: %v", err)
	}
	return id
}

// SeedUser inserts a Battle.net user row directly and returns its id.
func (env *TestEnv) SeedUser(battleNetID int64, battleTag string) int64 {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id int64
	err := env.Pool.QueryRow(ctx,
		`INSERT INTO users ("battleNetId", "battleTag") VALUES ($1, $2) RETURNING "id"`,
		battleNetID, battleTag).Scan(&id)
	if err != nil {
		env.t.Fatalf("SeedUser: insert: %v", err)
	}
	return id
}

// UserToken issues a user-realm JWT for a seeded user.
func (env *TestEnv) UserToken(userID int64, battleTag string) string {
	env.t.Helper()
	token, err := env.JWTMgr.GenerateToken(auth.RealmUser, userID, battleTag)
	if err != nil {
		env.t.Fatalf("UserToken: %v", err)
	}
	return token
}

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// POST performs a POST request with optional auth token.
func (env *TestEnv) POST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.do("POST", path, body, token)
}

// AuthGET performs an authenticated GET request.
func (env *TestEnv) AuthGET(path, token string) *http.Response {
	env.t.Helper()
	return env.do("GET", path, nil, token)
}

// AuthPUT performs an authenticated PUT request.
func (env *TestEnv) AuthPUT(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.do("PUT", path, body, token)
}

// AuthPATCH performs an authenticated PATCH request.
func (env *TestEnv) AuthPATCH(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	return env.do("PATCH", path, body, token)
}

// AuthDELETE performs an authenticated DELETE request.
func (env *TestEnv) AuthDELETE(path, token string) *http.Response {
	env.t.Helper()
	return env.do("DELETE", path, nil, token)
}

// OPTIONS performs an OPTIONS request.
func (env *TestEnv) OPTIONS(path string) *http.Response {
	env.t.Helper()
	return env.do("OPTIONS", path, nil, "")
}

func (env *TestEnv) do(method, path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("%s %s: encode: %v", method, path, err)
		}
	}
	req, err := http.NewRequest(method, env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("%s %s: new request: %v", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}
