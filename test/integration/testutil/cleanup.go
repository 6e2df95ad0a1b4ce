//go:build integration

package testutil

import (
	"context"
	"time"
)

// CleanAll truncates all tables in dependency-safe order.
func (env *TestEnv) CleanAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tables := []string{
		"sessions",
		"web_logs",
		"user_characters",
		"users",
		"application_comments",
		"applications",
		"raid_bosses",
		"raid_tiers",
		"expansions",
		"characters",
		"guilds",
		"admin_users",
		"media_files",
	}

	for _, table := range tables {
		_, _ = env.Pool.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE")
	}
}
