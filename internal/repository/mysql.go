package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/guttakrutt/guildsite/internal/infra"
)

// myStore is the MySQL-backed Store. The driver cannot return mutated rows
// from the mutating statement, so every write follows the same two-step
// protocol: issue the write, then re-select by the database-assigned id (for
// inserts, the driver-reported auto-increment key). Both steps run inside a
// transaction so no concurrent writer can slip between them.
type myStore struct {
	db     *sql.DB
	logger *slog.Logger
}

func newMySQLStore(db *sql.DB, logger *slog.Logger) *myStore {
	return &myStore{db: db, logger: logger}
}

func (s *myStore) Dialect() Dialect { return DialectMySQL }
func (s *myStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }
func (s *myStore) Close() { s.db.Close() }

func (s *myStore) Guilds() GuildRepository { return &myGuildRepo{s} }
func (s *myStore) Characters() CharacterRepository { return &myCharacterRepo{s} }
func (s *myStore) RaidBosses() RaidBossRepository { return &myRaidBossRepo{s} }
func (s *myStore) Applications() ApplicationRepository { return &myApplicationRepo{s} }
func (s *myStore) AdminUsers() AdminUserRepository { return &myAdminUserRepo{s} }
func (s *myStore) Users() UserRepository { return &myUserRepo{s} }
func (s *myStore) UserCharacters() UserCharacterRepository { return &myUserCharacterRepo{s} }
func (s *myStore) WebLogs() WebLogRepository { return &myWebLogRepo{s} }
func (s *myStore) Content() ContentRepository { return &myContentRepo{s} }
func (s *myStore) Media() MediaRepository { return &myMediaRepo{s} }

// adapt runs a Postgres-form fragment through AdaptQuery, logging queries that
// carry cast syntax so stray dialect leakage shows up in the logs.
func (s *myStore) adapt(query string) string {
	if strings.Contains(query, "::text") || strings.Contains(query, "CAST") {
		s.logger.Debug("adapting query with cast syntax", "query", query)
	}
	return AdaptQuery(query)
}

// withTx wraps the write-then-re-select sequence in a transaction.
func (s *myStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// dashboardStatsQuery is written against this dialect's snake_case schema;
// only the NOW()::date expression is Postgres-shaped, left for adapt to
// rewrite at query time.
const dashboardStatsQuery = `
	SELECT
		(SELECT COUNT(*) FROM characters WHERE ` + "`rank`" + ` <> 99) AS roster_count,
		(SELECT COUNT(*) FROM applications WHERE status = 'pending') AS pending_applications,
		(SELECT COUNT(*) FROM raid_bosses WHERE defeated = 1) AS bosses_defeated,
		(SELECT COUNT(*) FROM web_logs WHERE created_at >= NOW()::date) AS logs_today`

// DashboardStats reads the counters as a generic row and normalizes the keys
// to the canonical camelCase shape.
func (s *myStore) DashboardStats(ctx context.Context) (map[string]interface{}, error) {
	rows, err := s.db.QueryContext(ctx, s.adapt(dashboardStatsQuery))
	if err != nil {
		return nil, fmt.Errorf("query dashboard stats: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("dashboard stats: %w", err)
		}
		return nil, fmt.Errorf("dashboard stats: empty result")
	}
	raw, err := scanRowMap(rows)
	if err != nil {
		return nil, err
	}
	return FromStorageRow(raw), nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRowMap reads the current row into a column-keyed map.
func scanRowMap(rows *sql.Rows) (map[string]interface{}, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("row columns: %w", err)
	}

	vals := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("scan row: %w", err)
	}

	out := make(map[string]interface{}, len(cols))
	for i, c := range cols {
		v := vals[i]
		// the text protocol hands numbers back as []byte
		if b, ok := v.([]byte); ok {
			v = string(b)
		}
		out[c] = v
	}
	return out, nil
}

// buildMySet assembles a dynamic SET clause from a camelCase partial update,
// translating field names through the normalizer. Same allowlist discipline
// as the Postgres side; the Mythic+ score is coerced here too.
func buildMySet(fields map[string]interface{}, allowed map[string]bool) (string, []interface{}, error) {
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

	set := "updated_at = NOW()"
	args := make([]interface{}, 0, len(keys))
	for _, k := range keys {
		v := fields[k]
		if k == "mythicPlusScore" {
			v = infra.CoerceScore(v)
		}
		set += fmt.Sprintf(", `%s` = ?", ToColumn(k))
		args = append(args, v)
	}
	return set, args, nil
}
