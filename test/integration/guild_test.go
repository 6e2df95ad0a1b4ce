//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuildSummary_Empty(t *testing.T) {
	env := testutil.NewTestEnv(t)
	resp := env.GET("/api/guild")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Guild       *domain.Guild `json:"guild"`
		RosterCount int           `json:"roster_count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Nil(t, result.Guild)
	assert.Equal(t, 0, result.RosterCount)
}

func TestGuildSummary_WithRoster(t *testing.T) {
	env := testutil.NewTestEnv(t)
	guildID := env.SeedGuild("Guttakrutt", "Tarren Mill")
	env.SeedCharacter(guildID, "Brutalicus", "Warrior", 0)
	env.SeedCharacter(guildID, "Healbot", "Priest", 1)

	resp := env.GET("/api/guild")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Guild       *domain.Guild `json:"guild"`
		RosterCount int           `json:"roster_count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.NotNil(t, result.Guild)
	assert.Equal(t, "Guttakrutt", result.Guild.Name)
	assert.Equal(t, "Tarren Mill", result.Guild.Realm)
	assert.Equal(t, 2, result.RosterCount)
}

func TestRoster_OrderedByRank(t *testing.T) {
	env := testutil.NewTestEnv(t)
	guildID := env.SeedGuild("Guttakrutt", "Tarren Mill")
	env.SeedCharacter(guildID, "Officerone", "Shaman", 1)
	env.SeedCharacter(guildID, "Guildlead", "Warrior", 0)
	env.SeedCharacter(guildID, "Raidertwo", "Mage", 4)

	resp := env.GET("/api/roster")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Roster []domain.Character `json:"roster"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Len(t, result.Roster, 3)
	assert.Equal(t, "Guildlead", result.Roster[0].Name)
	assert.Equal(t, "Officerone", result.Roster[1].Name)
	assert.Equal(t, "Raidertwo", result.Roster[2].Name)
}

func TestRoster_RemovedCharactersSortLast(t *testing.T) {
	env := testutil.NewTestEnv(t)
	guildID := env.SeedGuild("Guttakrutt", "Tarren Mill")
	env.SeedCharacter(guildID, "Stillhere", "Druid", 2)
	env.SeedCharacter(guildID, "Longgone", "Rogue", domain.RankRemoved)

	resp := env.GET("/api/roster")
	defer resp.Body.Close()

	var result struct {
		Roster []domain.Character `json:"roster"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Len(t, result.Roster, 2)
	assert.Equal(t, "Longgone", result.Roster[1].Name)
	assert.Equal(t, domain.RankRemoved, result.Roster[1].Rank)
}

func TestProgress_Tally(t *testing.T) {
	env := testutil.NewTestEnv(t)
	guildID := env.SeedGuild("Guttakrutt", "Tarren Mill")
	adminToken := seedAndLogin(t, env)

	bosses := []map[string]interface{}{
		{"guild_id": guildID, "name": "Vexie", "raid_name": "Liberation of Undermine", "difficulty": "mythic", "defeated": true},
		{"guild_id": guildID, "name": "Rik Reverb", "raid_name": "Liberation of Undermine", "difficulty": "mythic", "defeated": true},
		{"guild_id": guildID, "name": "Mug'Zee", "raid_name": "Liberation of Undermine", "difficulty": "mythic", "defeated": false},
	}
	for _, b := range bosses {
		resp := env.AuthPUT("/admin/bosses", b, adminToken)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := env.GET("/api/progress?raid=Liberation%20of%20Undermine&difficulty=mythic")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		RaidName   string            `json:"raid_name"`
		Difficulty string            `json:"difficulty"`
		Defeated   int               `json:"defeated"`
		Total      int               `json:"total"`
		Bosses     []domain.RaidBoss `json:"bosses"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "mythic", result.Difficulty)
	assert.Equal(t, 2, result.Defeated)
	assert.Equal(t, 3, result.Total)
	assert.Len(t, result.Bosses, 3)
}

func TestProgress_DefaultDifficultyIsMythic(t *testing.T) {
	env := testutil.NewTestEnv(t)
	resp := env.GET("/api/progress?raid=Liberation%20of%20Undermine")
	defer resp.Body.Close()

	var result struct {
		Difficulty string `json:"difficulty"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "mythic", result.Difficulty)
}

func TestProgress_UpsertRefreshesExistingRow(t *testing.T) {
	env := testutil.NewTestEnv(t)
	guildID := env.SeedGuild("Guttakrutt", "Tarren Mill")
	adminToken := seedAndLogin(t, env)

	body := map[string]interface{}{
		"guild_id": guildID, "name": "Gallywix", "raid_name": "Liberation of Undermine",
		"difficulty": "mythic", "defeated": false, "pull_count": 120,
	}
	resp := env.AuthPUT("/admin/bosses", body, adminToken)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body["defeated"] = true
	body["pull_count"] = 188
	resp = env.AuthPUT("/admin/bosses", body, adminToken)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int
	env.Pool.QueryRow(t.Context(),
		`SELECT COUNT(*) FROM raid_bosses WHERE "name" = 'Gallywix'`).Scan(&count)
	assert.Equal(t, 1, count)
}

func TestHealth(t *testing.T) {
	env := testutil.NewTestEnv(t)
	resp := env.GET("/health")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Status  string `json:"status"`
		Dialect string `json:"dialect"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "healthy", result.Status)
	assert.Equal(t, "postgres", result.Dialect)
}

func seedAndLogin(t *testing.T, env *testutil.TestEnv) string {
	t.Helper()
	env.SeedAdmin("raidlead", "strongpassword")
	return env.LoginAdmin("raidlead", "strongpassword")
}
