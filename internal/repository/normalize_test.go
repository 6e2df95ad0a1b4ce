package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToColumn(t *testing.T) {
	assert.Equal(t, "mythic_plus_score", ToColumn("mythicPlusScore"))
	assert.Equal(t, "guild_id", ToColumn("guildId"))
	assert.Equal(t, "is_main", ToColumn("isMain"))
	// single-word fields are identical in both casings
	assert.Equal(t, "name", ToColumn("name"))
	assert.Equal(t, "rank", ToColumn("rank"))
	// unmapped fields pass through unchanged
	assert.Equal(t, "somethingNew", ToColumn("somethingNew"))
}

func TestFromColumn(t *testing.T) {
	assert.Equal(t, "mythicPlusScore", FromColumn("mythic_plus_score"))
	assert.Equal(t, "rosterCount", FromColumn("roster_count"))
	assert.Equal(t, "realm", FromColumn("realm"))
}

func TestNormalizeRoundTrip(t *testing.T) {
	camel := map[string]interface{}{
		"guildId":         int64(1),
		"name":            "Uunalv",
		"realm":           "Tarren Mill",
		"itemLevel":       489,
		"mythicPlusScore": 2710,
		"rank":            3,
		"isMain":          true,
		"lastKillAt":      nil,
	}

	storage := ToStorageFields(camel)
	require.Contains(t, storage, "guild_id")
	require.Contains(t, storage, "mythic_plus_score")
	require.NotContains(t, storage, "guildId")

	back := FromStorageRow(storage)
	assert.Equal(t, camel, back)
}

func TestNormalizeRoundTrip_AllKnownFields(t *testing.T) {
	for camel := range mysqlColumnFor {
		assert.Equal(t, camel, FromColumn(ToColumn(camel)), "field: %s", camel)
	}
}
