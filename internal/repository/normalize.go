package repository

// The two dialects express the same logical schema with different identifier
// casing: Postgres columns are camelCase quoted identifiers, MySQL columns are
// snake_case. Application code only ever sees the camelCase shape; these maps
// are the single boundary where rows cross into and out of MySQL.
var mysqlColumnFor = map[string]string{
	"guildId":         "guild_id",
	"memberCount":     "member_count",
	"emblemUrl":       "emblem_url",
	"itemLevel":       "item_level",
	"mythicPlusScore": "mythic_plus_score",
	"raidName":        "raid_name",
	"pullCount":       "pull_count",
	"bestTimeMs":      "best_time_ms",
	"bestParse":       "best_parse",
	"lastKillAt":      "last_kill_at",
	"warcraftlogsId":  "warcraftlogs_id",
	"characterName":   "character_name",
	"battleTag":       "battle_tag",
	"aboutText":       "about_text",
	"raidExperience":  "raid_experience",
	"reviewedBy":      "reviewed_by",
	"reviewNotes":     "review_notes",
	"reviewedAt":      "reviewed_at",
	"applicationId":   "application_id",
	"adminId":         "admin_id",
	"passwordHash":    "password_hash",
	"lastLoginAt":     "last_login_at",
	"battleNetId":     "battle_net_id",
	"accessToken":     "access_token",
	"refreshToken":    "refresh_token",
	"tokenExpiresAt":  "token_expires_at",
	"isGuildMember":   "is_guild_member",
	"userId":          "user_id",
	"characterId":     "character_id",
	"isMain":          "is_main",
	"expansionId":     "expansion_id",
	"isActive":        "is_active",
	"isCurrent":       "is_current",
	"fileName":        "file_name",
	"filePath":        "file_path",
	"mimeType":        "mime_type",
	"sizeBytes":       "size_bytes",
	"uploadedBy":      "uploaded_by",
	"createdAt":       "created_at",
	"updatedAt":       "updated_at",
	// aggregate aliases used by dashboard queries
	"rosterCount":         "roster_count",
	"pendingApplications": "pending_applications",
	"bossesDefeated":      "bosses_defeated",
	"logsToday":           "logs_today",
}

var mysqlFieldFor = func() map[string]string {
	m := make(map[string]string, len(mysqlColumnFor))
	for camel, snake := range mysqlColumnFor {
		m[snake] = camel
	}
	return m
}()

// ToColumn maps a camelCase field name to its MySQL column. Unmapped names
// pass through unchanged (single-word fields are identical in both casings).
func ToColumn(field string) string {
	if col, ok := mysqlColumnFor[field]; ok {
		return col
	}
	return field
}

// FromColumn maps a MySQL column name back to the camelCase field name.
func FromColumn(column string) string {
	if f, ok := mysqlFieldFor[column]; ok {
		return f
	}
	return column
}

// ToStorageFields translates a camelCase partial update into MySQL column keys.
func ToStorageFields(fields map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		out[ToColumn(k)] = v
	}
	return out
}

// FromStorageRow translates a raw MySQL row into the canonical camelCase shape.
func FromStorageRow(row map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(row))
	for k, v := range row {
		out[FromColumn(k)] = v
	}
	return out
}
