package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/jackc/pgx/v5"
)

const pgRaidBossCols = `"id", "guildId", "name", "raidName", "difficulty", "defeated", "pullCount", "bestTimeMs", "bestParse", "lastKillAt", "warcraftlogsId", "createdAt", "updatedAt"`

type pgRaidBossRepo struct{ db DBTX }

func scanPgRaidBoss(row pgx.Row) (*domain.RaidBoss, error) {
	b := &domain.RaidBoss{}
	err := row.Scan(&b.ID, &b.GuildID, &b.Name, &b.RaidName, &b.Difficulty, &b.Defeated,
		&b.PullCount, &b.BestTimeMs, &b.BestParse, &b.LastKillAt, &b.WarcraftLogsID,
		&b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan raid boss: %w", err)
	}
	return b, nil
}

func (r *pgRaidBossRepo) FindByID(ctx context.Context, id int64) (*domain.RaidBoss, error) {
	return scanPgRaidBoss(r.db.QueryRow(ctx,
		`SELECT `+pgRaidBossCols+` FROM raid_bosses WHERE "id" = $1`, id))
}

// Find resolves the informal (guild, name, raid, difficulty) identity. If
// duplicate rows exist the oldest wins, so retried refresh jobs keep hitting
// the same row.
func (r *pgRaidBossRepo) Find(ctx context.Context, guildID int64, name, raidName, difficulty string) (*domain.RaidBoss, error) {
	return scanPgRaidBoss(r.db.QueryRow(ctx,
		`SELECT `+pgRaidBossCols+` FROM raid_bosses
		 WHERE "guildId" = $1 AND "name" = $2 AND "raidName" = $3 AND "difficulty" = $4
		 ORDER BY "id" ASC LIMIT 1`,
		guildID, name, raidName, difficulty))
}

func (r *pgRaidBossRepo) ListByGuild(ctx context.Context, guildID int64) ([]domain.RaidBoss, error) {
	return r.list(ctx,
		`SELECT `+pgRaidBossCols+` FROM raid_bosses WHERE "guildId" = $1 ORDER BY "raidName", "difficulty", "id"`,
		guildID)
}

func (r *pgRaidBossRepo) ListByRaid(ctx context.Context, guildID int64, raidName, difficulty string) ([]domain.RaidBoss, error) {
	return r.list(ctx,
		`SELECT `+pgRaidBossCols+` FROM raid_bosses
		 WHERE "guildId" = $1 AND "raidName" = $2 AND "difficulty" = $3 ORDER BY "id"`,
		guildID, raidName, difficulty)
}

func (r *pgRaidBossRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.RaidBoss, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query raid bosses: %w", err)
	}
	defer rows.Close()

	var out []domain.RaidBoss
	for rows.Next() {
		b, err := scanPgRaidBoss(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *pgRaidBossRepo) Create(ctx context.Context, b *domain.RaidBoss) (*domain.RaidBoss, error) {
	return scanPgRaidBoss(r.db.QueryRow(ctx, `
		INSERT INTO raid_bosses ("guildId", "name", "raidName", "difficulty", "defeated", "pullCount", "bestTimeMs", "bestParse", "lastKillAt", "warcraftlogsId")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+pgRaidBossCols,
		b.GuildID, b.Name, b.RaidName, b.Difficulty, b.Defeated, b.PullCount,
		b.BestTimeMs, b.BestParse, b.LastKillAt, b.WarcraftLogsID))
}

var raidBossUpdatable = map[string]bool{
	"name": true, "raidName": true, "difficulty": true, "defeated": true,
	"pullCount": true, "bestTimeMs": true, "bestParse": true, "lastKillAt": true,
	"warcraftlogsId": true,
}

func (r *pgRaidBossRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) (*domain.RaidBoss, error) {
	set, args, err := buildPgSet(fields, raidBossUpdatable)
	if err != nil {
		return nil, fmt.Errorf("update raid boss: %w", err)
	}
	args = append(args, id)
	return scanPgRaidBoss(r.db.QueryRow(ctx, fmt.Sprintf(
		`UPDATE raid_bosses SET %s WHERE "id" = $%d RETURNING %s`, set, len(args), pgRaidBossCols),
		args...))
}

func (r *pgRaidBossRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM raid_bosses WHERE "id" = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete raid boss: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

type pgContentRepo struct{ db DBTX }

func (r *pgContentRepo) ListExpansions(ctx context.Context) ([]domain.Expansion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT "id", "name", "number", "isActive" FROM expansions ORDER BY "number" ASC`)
	if err != nil {
		return nil, fmt.Errorf("query expansions: %w", err)
	}
	defer rows.Close()

	var out []domain.Expansion
	for rows.Next() {
		var e domain.Expansion
		if err := rows.Scan(&e.ID, &e.Name, &e.Number, &e.IsActive); err != nil {
			return nil, fmt.Errorf("scan expansion: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *pgContentRepo) CreateExpansion(ctx context.Context, e *domain.Expansion) (*domain.Expansion, error) {
	out := &domain.Expansion{}
	err := r.db.QueryRow(ctx, `
		INSERT INTO expansions ("name", "number", "isActive") VALUES ($1, $2, $3)
		RETURNING "id", "name", "number", "isActive"`,
		e.Name, e.Number, e.IsActive).
		Scan(&out.ID, &out.Name, &out.Number, &out.IsActive)
	if err != nil {
		return nil, fmt.Errorf("insert expansion: %w", err)
	}
	return out, nil
}

// SetActiveExpansion flips the singleton flag in one statement so no
// interleaving can leave zero or two active rows. The EXISTS guard makes an
// unknown id update nothing instead of clearing the flag everywhere, so the
// zero row count below reports the miss.
func (r *pgContentRepo) SetActiveExpansion(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE expansions SET "isActive" = ("id" = $1)
		WHERE EXISTS (SELECT 1 FROM expansions WHERE "id" = $1)`, id)
	if err != nil {
		return fmt.Errorf("set active expansion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("expansion", fmt.Sprint(id))
	}
	return nil
}

func (r *pgContentRepo) FindActiveExpansion(ctx context.Context) (*domain.Expansion, error) {
	e := &domain.Expansion{}
	err := r.db.QueryRow(ctx,
		`SELECT "id", "name", "number", "isActive" FROM expansions WHERE "isActive" = true LIMIT 1`).
		Scan(&e.ID, &e.Name, &e.Number, &e.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan active expansion: %w", err)
	}
	return e, nil
}

func (r *pgContentRepo) ListTiers(ctx context.Context, expansionID int64) ([]domain.RaidTier, error) {
	rows, err := r.db.Query(ctx,
		`SELECT "id", "expansionId", "name", "isCurrent" FROM raid_tiers WHERE "expansionId" = $1 ORDER BY "id" ASC`,
		expansionID)
	if err != nil {
		return nil, fmt.Errorf("query raid tiers: %w", err)
	}
	defer rows.Close()

	var out []domain.RaidTier
	for rows.Next() {
		var t domain.RaidTier
		if err := rows.Scan(&t.ID, &t.ExpansionID, &t.Name, &t.IsCurrent); err != nil {
			return nil, fmt.Errorf("scan raid tier: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *pgContentRepo) CreateTier(ctx context.Context, t *domain.RaidTier) (*domain.RaidTier, error) {
	out := &domain.RaidTier{}
	err := r.db.QueryRow(ctx, `
		INSERT INTO raid_tiers ("expansionId", "name", "isCurrent") VALUES ($1, $2, $3)
		RETURNING "id", "expansionId", "name", "isCurrent"`,
		t.ExpansionID, t.Name, t.IsCurrent).
		Scan(&out.ID, &out.ExpansionID, &out.Name, &out.IsCurrent)
	if err != nil {
		return nil, fmt.Errorf("insert raid tier: %w", err)
	}
	return out, nil
}

// SetCurrentTier mirrors SetActiveExpansion: one conditional update guarded
// by existence of the target row.
func (r *pgContentRepo) SetCurrentTier(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE raid_tiers SET "isCurrent" = ("id" = $1)
		WHERE EXISTS (SELECT 1 FROM raid_tiers WHERE "id" = $1)`, id)
	if err != nil {
		return fmt.Errorf("set current tier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("raid tier", fmt.Sprint(id))
	}
	return nil
}

func (r *pgContentRepo) FindCurrentTier(ctx context.Context) (*domain.RaidTier, error) {
	t := &domain.RaidTier{}
	err := r.db.QueryRow(ctx,
		`SELECT "id", "expansionId", "name", "isCurrent" FROM raid_tiers WHERE "isCurrent" = true LIMIT 1`).
		Scan(&t.ID, &t.ExpansionID, &t.Name, &t.IsCurrent)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan current tier: %w", err)
	}
	return t, nil
}
