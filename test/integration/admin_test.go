//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminLogin_Success(t *testing.T) {
	env := testutil.NewTestEnv(t)
	adminID := env.SeedAdmin("raidlead", "strongpassword")

	resp := env.POST("/admin/login", map[string]string{
		"username": "raidlead", "password": "strongpassword",
	}, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Token        string `json:"token"`
		SessionToken string `json:"session_token"`
		AdminID      int64  `json:"admin_id"`
		Username     string `json:"username"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.SessionToken)
	assert.Equal(t, adminID, result.AdminID)
	assert.Equal(t, "raidlead", result.Username)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.SeedAdmin("raidlead", "strongpassword")

	resp := env.POST("/admin/login", map[string]string{
		"username": "raidlead", "password": "wrongpassword",
	}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminLogin_UnknownUser(t *testing.T) {
	env := testutil.NewTestEnv(t)
	resp := env.POST("/admin/login", map[string]string{
		"username": "nobody", "password": "whatever123",
	}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminLogin_TouchesLastLogin(t *testing.T) {
	env := testutil.NewTestEnv(t)
	adminID := env.SeedAdmin("raidlead", "strongpassword")
	env.LoginAdmin("raidlead", "strongpassword")

	var hasLogin bool
	env.Pool.QueryRow(t.Context(),
		`SELECT "lastLoginAt" IS NOT NULL FROM admin_users WHERE "id" = $1`, adminID).Scan(&hasLogin)
	assert.True(t, hasLogin)
}

func TestAdminLogin_LockoutAfterFailures(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.SeedAdmin("raidlead", "strongpassword")

	for i := 0; i < 5; i++ {
		resp := env.POST("/admin/login", map[string]string{
			"username": "raidlead", "password": "wrongpassword",
		}, "")
		resp.Body.Close()
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	// Correct password no longer helps once locked.
	resp := env.POST("/admin/login", map[string]string{
		"username": "raidlead", "password": "strongpassword",
	}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestAdminLogout_RevokesSession(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.SeedAdmin("raidlead", "strongpassword")

	resp := env.POST("/admin/login", map[string]string{
		"username": "raidlead", "password": "strongpassword",
	}, "")
	var login struct {
		Token        string `json:"token"`
		SessionToken string `json:"session_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	resp.Body.Close()

	var count int
	env.Pool.QueryRow(t.Context(),
		`SELECT COUNT(*) FROM sessions WHERE "token" = $1`, login.SessionToken).Scan(&count)
	require.Equal(t, 1, count)

	resp = env.POST("/admin/logout", map[string]string{
		"session_token": login.SessionToken,
	}, login.Token)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env.Pool.QueryRow(t.Context(),
		`SELECT COUNT(*) FROM sessions WHERE "token" = $1`, login.SessionToken).Scan(&count)
	assert.Equal(t, 0, count)
}

func TestAdminRoutes_RequireAuth(t *testing.T) {
	env := testutil.NewTestEnv(t)

	paths := []string{"/admin/dashboard", "/admin/applications", "/admin/users", "/admin/logs"}
	for _, path := range paths {
		resp := env.GET(path)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestAdminRoutes_RejectUserRealmToken(t *testing.T) {
	env := testutil.NewTestEnv(t)
	userID := env.SeedUser(700123, "Frosty#2134")
	token := env.UserToken(userID, "Frosty#2134")

	resp := env.AuthGET("/admin/dashboard", token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminUsers_CreateAndList(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := seedAndLogin(t, env)

	resp := env.POST("/admin/users", map[string]string{
		"username": "officer", "password": "anotherpassword",
	}, token)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.AdminUser
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "officer", created.Username)

	listResp := env.AuthGET("/admin/users", token)
	defer listResp.Body.Close()

	var result struct {
		Admins []domain.AdminUser `json:"admins"`
	}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&result))
	assert.Len(t, result.Admins, 2)
}

func TestAdminUsers_CreateDuplicateUsername(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := seedAndLogin(t, env)

	resp := env.POST("/admin/users", map[string]string{
		"username": "raidlead", "password": "anotherpassword",
	}, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAdminUsers_ShortPassword(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := seedAndLogin(t, env)

	resp := env.POST("/admin/users", map[string]string{
		"username": "officer", "password": "short",
	}, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminUsers_ChangePassword(t *testing.T) {
	env := testutil.NewTestEnv(t)
	adminID := env.SeedAdmin("raidlead", "strongpassword")
	token := env.LoginAdmin("raidlead", "strongpassword")

	resp := env.AuthPATCH(fmt.Sprintf("/admin/users/%d/password", adminID),
		map[string]string{"password": "rotatedpassword"}, token)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env.LoginAdmin("raidlead", "rotatedpassword")
}

func TestAdminUsers_CannotDeleteSelf(t *testing.T) {
	env := testutil.NewTestEnv(t)
	adminID := env.SeedAdmin("raidlead", "strongpassword")
	token := env.LoginAdmin("raidlead", "strongpassword")

	resp := env.AuthDELETE(fmt.Sprintf("/admin/users/%d", adminID), token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdminUsers_DeleteOther(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := seedAndLogin(t, env)
	otherID := env.SeedAdmin("officer", "anotherpassword")

	resp := env.AuthDELETE(fmt.Sprintf("/admin/users/%d", otherID), token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDashboard_Counters(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := seedAndLogin(t, env)

	guildID := env.SeedGuild("Guttakrutt", "Tarren Mill")
	env.SeedCharacter(guildID, "Brutalicus", "Warrior", 0)
	env.SeedCharacter(guildID, "Longgone", "Rogue", domain.RankRemoved)

	resp := env.POST("/api/applications", applicationBody(), "")
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	dashResp := env.AuthGET("/admin/dashboard", token)
	defer dashResp.Body.Close()

	assert.Equal(t, http.StatusOK, dashResp.StatusCode)

	var stats map[string]interface{}
	require.NoError(t, json.NewDecoder(dashResp.Body).Decode(&stats))
	assert.EqualValues(t, 1, stats["rosterCount"])
	assert.EqualValues(t, 1, stats["pendingApplications"])
}

func TestWebLogs_ListAndPrune(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := seedAndLogin(t, env)

	resp := env.POST("/api/applications", applicationBody(), "")
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	listResp := env.AuthGET("/admin/logs", token)
	defer listResp.Body.Close()

	var result struct {
		Logs []domain.WebLog `json:"logs"`
	}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&result))
	assert.NotEmpty(t, result.Logs)

	pruneResp := env.POST("/admin/logs/prune", map[string]string{"retention": "1ms"}, token)
	defer pruneResp.Body.Close()
	assert.Equal(t, http.StatusOK, pruneResp.StatusCode)

	var count int
	env.Pool.QueryRow(t.Context(), `SELECT COUNT(*) FROM web_logs`).Scan(&count)
	assert.Equal(t, 0, count)
}
