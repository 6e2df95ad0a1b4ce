package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/guttakrutt/guildsite/internal/infra"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so Postgres repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// pgStore is the PostgreSQL-backed Store. Columns on this dialect are
// camelCase quoted identifiers; mutations use native RETURNING.
type pgStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func newPostgresStore(pool *pgxpool.Pool, logger *slog.Logger) *pgStore {
	return &pgStore{pool: pool, logger: logger}
}

func (s *pgStore) Dialect() Dialect { return DialectPostgres }
func (s *pgStore) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }
func (s *pgStore) Close() { s.pool.Close() }

// Pool exposes the underlying pgx pool for collaborators that need the raw
// handle, such as the session store.
func (s *pgStore) Pool() *pgxpool.Pool { return s.pool }

func (s *pgStore) Guilds() GuildRepository { return &pgGuildRepo{s.pool} }
func (s *pgStore) Characters() CharacterRepository { return &pgCharacterRepo{s.pool} }
func (s *pgStore) RaidBosses() RaidBossRepository { return &pgRaidBossRepo{s.pool} }
func (s *pgStore) Applications() ApplicationRepository { return &pgApplicationRepo{s.pool} }
func (s *pgStore) AdminUsers() AdminUserRepository { return &pgAdminUserRepo{s.pool} }
func (s *pgStore) Users() UserRepository { return &pgUserRepo{s.pool} }
func (s *pgStore) UserCharacters() UserCharacterRepository { return &pgUserCharacterRepo{s.pool} }
func (s *pgStore) WebLogs() WebLogRepository { return &pgWebLogRepo{s.pool} }
func (s *pgStore) Content() ContentRepository { return &pgContentRepo{s.pool} }
func (s *pgStore) Media() MediaRepository { return &pgMediaRepo{s.pool} }

// DashboardStats runs the admin dashboard counters with the dialect-native
// date syntax.
func (s *pgStore) DashboardStats(ctx context.Context) (map[string]interface{}, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM characters WHERE "rank" <> 99),
			(SELECT COUNT(*) FROM applications WHERE "status" = 'pending'),
			(SELECT COUNT(*) FROM raid_bosses WHERE "defeated" = true),
			(SELECT COUNT(*) FROM web_logs WHERE "createdAt" >= NOW()::date)`)

	var roster, pending, defeated, logsToday int64
	if err := row.Scan(&roster, &pending, &defeated, &logsToday); err != nil {
		return nil, fmt.Errorf("scan dashboard stats: %w", err)
	}
	return map[string]interface{}{
		"rosterCount":         roster,
		"pendingApplications": pending,
		"bossesDefeated":      defeated,
		"logsToday":           logsToday,
	}, nil
}

// buildPgSet assembles a dynamic SET clause from a camelCase partial update.
// Field names are checked against the caller's allowlist before being quoted
// into the statement; values always travel as bind parameters. The Mythic+
// score is coerced to its stored integer form here so every write path agrees.
func buildPgSet(fields map[string]interface{}, allowed map[string]bool) (string, []interface{}, error) {
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("no fields to update")
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !allowed[k] {
			return "", nil, fmt.Errorf("unknown field %q", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	set := `"updatedAt" = now()`
	args := make([]interface{}, 0, len(keys))
	for i, k := range keys {
		v := fields[k]
		if k == "mythicPlusScore" {
			v = infra.CoerceScore(v)
		}
		set += fmt.Sprintf(`, %q = $%d`, k, i+1)
		args = append(args, v)
	}
	return set, args, nil
}
