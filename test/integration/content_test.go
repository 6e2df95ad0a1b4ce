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

func TestExpansions_ActivateIsExclusive(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := seedAndLogin(t, env)

	var ids []int64
	for i, name := range []string{"Dragonflight", "The War Within"} {
		resp := env.POST("/admin/expansions", map[string]interface{}{
			"name": name, "number": 9 + i,
		}, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var created domain.Expansion
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
		resp.Body.Close()
		ids = append(ids, created.ID)
	}

	for _, id := range ids {
		resp := env.POST(fmt.Sprintf("/admin/expansions/%d/activate", id), nil, token)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var active int
	env.Pool.QueryRow(t.Context(),
		`SELECT COUNT(*) FROM expansions WHERE "isActive"`).Scan(&active)
	assert.Equal(t, 1, active)

	var activeID int64
	env.Pool.QueryRow(t.Context(),
		`SELECT "id" FROM expansions WHERE "isActive"`).Scan(&activeID)
	assert.Equal(t, ids[1], activeID)
}

func TestExpansions_ActivateUnknownIDLeavesActiveAlone(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := seedAndLogin(t, env)

	resp := env.POST("/admin/expansions", map[string]interface{}{
		"name": "The War Within", "number": 10,
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created domain.Expansion
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()

	resp = env.POST(fmt.Sprintf("/admin/expansions/%d/activate", created.ID), nil, token)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.POST("/admin/expansions/99999/activate", nil, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var activeID int64
	require.NoError(t, env.Pool.QueryRow(t.Context(),
		`SELECT "id" FROM expansions WHERE "isActive"`).Scan(&activeID))
	assert.Equal(t, created.ID, activeID)
}

func TestTiers_CreateListActivate(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := seedAndLogin(t, env)

	resp := env.POST("/admin/expansions", map[string]interface{}{
		"name": "The War Within", "number": 10,
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var expansion domain.Expansion
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&expansion))
	resp.Body.Close()

	var tierIDs []int64
	for _, name := range []string{"Nerub-ar Palace", "Liberation of Undermine"} {
		resp := env.POST("/admin/tiers", map[string]interface{}{
			"expansion_id": expansion.ID, "name": name,
		}, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var tier domain.RaidTier
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&tier))
		resp.Body.Close()
		tierIDs = append(tierIDs, tier.ID)
	}

	resp = env.POST(fmt.Sprintf("/admin/tiers/%d/activate", tierIDs[1]), nil, token)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	listResp := env.AuthGET(fmt.Sprintf("/admin/expansions/%d/tiers", expansion.ID), token)
	defer listResp.Body.Close()

	var result struct {
		Tiers []domain.RaidTier `json:"tiers"`
	}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&result))
	require.Len(t, result.Tiers, 2)

	current := 0
	for _, tier := range result.Tiers {
		if tier.IsCurrent {
			current++
			assert.Equal(t, tierIDs[1], tier.ID)
		}
	}
	assert.Equal(t, 1, current)
}

func TestRoster_AdminLifecycle(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := seedAndLogin(t, env)

	resp := env.POST("/admin/guilds", map[string]interface{}{
		"name": "Guttakrutt", "realm": "Tarren Mill", "region": "eu", "faction": "Horde",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var guild domain.Guild
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&guild))
	resp.Body.Close()

	resp = env.POST("/admin/characters", map[string]interface{}{
		"guild_id": guild.ID, "name": "Brutalicus", "realm": "Tarren Mill",
		"class": "Warrior", "rank": 0, "level": 80, "item_level": 630,
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var char domain.Character
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&char))
	resp.Body.Close()

	// Partial updates use the camelCase field names; fractional scores from
	// the game API round to the stored integer.
	resp = env.AuthPATCH(fmt.Sprintf("/admin/characters/%d", char.ID),
		map[string]interface{}{"mythicPlusScore": 3214.6}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated domain.Character
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	resp.Body.Close()
	assert.Equal(t, 3215, updated.MythicPlusScore)

	resp = env.POST(fmt.Sprintf("/admin/characters/%d/remove", char.ID), nil, token)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rank int
	env.Pool.QueryRow(t.Context(),
		`SELECT "rank" FROM characters WHERE "id" = $1`, char.ID).Scan(&rank)
	assert.Equal(t, domain.RankRemoved, rank)

	resp = env.AuthDELETE(fmt.Sprintf("/admin/characters/%d", char.ID), token)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int
	env.Pool.QueryRow(t.Context(),
		`SELECT COUNT(*) FROM characters WHERE "id" = $1`, char.ID).Scan(&count)
	assert.Equal(t, 0, count)
}

func TestGuild_CreateDuplicate(t *testing.T) {
	env := testutil.NewTestEnv(t)
	token := seedAndLogin(t, env)
	env.SeedGuild("Guttakrutt", "Tarren Mill")

	resp := env.POST("/admin/guilds", map[string]interface{}{
		"name": "Guttakrutt", "realm": "Tarren Mill", "region": "eu",
	}, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCORS_Preflight(t *testing.T) {
	env := testutil.NewTestEnv(t)
	resp := env.OPTIONS("/api/guild")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
