package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guttakrutt/guildsite/internal/domain"
)

const myRaidBossCols = "id, guild_id, name, raid_name, difficulty, defeated, pull_count, best_time_ms, best_parse, last_kill_at, warcraftlogs_id, created_at, updated_at"

type myRaidBossRepo struct{ s *myStore }

func scanMyRaidBoss(row rowScanner) (*domain.RaidBoss, error) {
	b := &domain.RaidBoss{}
	err := row.Scan(&b.ID, &b.GuildID, &b.Name, &b.RaidName, &b.Difficulty, &b.Defeated,
		&b.PullCount, &b.BestTimeMs, &b.BestParse, &b.LastKillAt, &b.WarcraftLogsID,
		&b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan raid boss: %w", err)
	}
	return b, nil
}

func (r *myRaidBossRepo) FindByID(ctx context.Context, id int64) (*domain.RaidBoss, error) {
	return scanMyRaidBoss(r.s.db.QueryRowContext(ctx,
		`SELECT `+myRaidBossCols+` FROM raid_bosses WHERE id = ?`, id))
}

func (r *myRaidBossRepo) Find(ctx context.Context, guildID int64, name, raidName, difficulty string) (*domain.RaidBoss, error) {
	return scanMyRaidBoss(r.s.db.QueryRowContext(ctx,
		`SELECT `+myRaidBossCols+` FROM raid_bosses
		 WHERE guild_id = ? AND name = ? AND raid_name = ? AND difficulty = ?
		 ORDER BY id ASC LIMIT 1`,
		guildID, name, raidName, difficulty))
}

func (r *myRaidBossRepo) ListByGuild(ctx context.Context, guildID int64) ([]domain.RaidBoss, error) {
	return r.list(ctx,
		`SELECT `+myRaidBossCols+` FROM raid_bosses WHERE guild_id = ? ORDER BY raid_name, difficulty, id`,
		guildID)
}

func (r *myRaidBossRepo) ListByRaid(ctx context.Context, guildID int64, raidName, difficulty string) ([]domain.RaidBoss, error) {
	return r.list(ctx,
		`SELECT `+myRaidBossCols+` FROM raid_bosses
		 WHERE guild_id = ? AND raid_name = ? AND difficulty = ? ORDER BY id`,
		guildID, raidName, difficulty)
}

func (r *myRaidBossRepo) list(ctx context.Context, query string, args ...interface{}) ([]domain.RaidBoss, error) {
	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query raid bosses: %w", err)
	}
	defer rows.Close()

	var out []domain.RaidBoss
	for rows.Next() {
		b, err := scanMyRaidBoss(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// Create re-selects by the auto-increment id, never by name: same-named
// bosses exist across difficulties and the name lookup historically returned
// the wrong row under concurrent refreshes.
func (r *myRaidBossRepo) Create(ctx context.Context, b *domain.RaidBoss) (*domain.RaidBoss, error) {
	var out *domain.RaidBoss
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO raid_bosses (guild_id, name, raid_name, difficulty, defeated, pull_count, best_time_ms, best_parse, last_kill_at, warcraftlogs_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.GuildID, b.Name, b.RaidName, b.Difficulty, b.Defeated, b.PullCount,
			b.BestTimeMs, b.BestParse, b.LastKillAt, b.WarcraftLogsID)
		if err != nil {
			return fmt.Errorf("insert raid boss: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert raid boss id: %w", err)
		}
		out, err = scanMyRaidBoss(tx.QueryRowContext(ctx,
			`SELECT `+myRaidBossCols+` FROM raid_bosses WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if out == nil {
			return domain.ErrWriteVerify("raid boss", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *myRaidBossRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) (*domain.RaidBoss, error) {
	set, args, err := buildMySet(fields, raidBossUpdatable)
	if err != nil {
		return nil, fmt.Errorf("update raid boss: %w", err)
	}
	var out *domain.RaidBoss
	err = r.s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`UPDATE raid_bosses SET %s WHERE id = ?`, set), append(args, id)...); err != nil {
			return fmt.Errorf("update raid boss: %w", err)
		}
		out, err = scanMyRaidBoss(tx.QueryRowContext(ctx,
			`SELECT `+myRaidBossCols+` FROM raid_bosses WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if out == nil {
			return domain.ErrWriteVerify("raid boss", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *myRaidBossRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM raid_bosses WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete raid boss: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete raid boss: %w", err)
	}
	return n > 0, nil
}

type myContentRepo struct{ s *myStore }

func (r *myContentRepo) ListExpansions(ctx context.Context) ([]domain.Expansion, error) {
	rows, err := r.s.db.QueryContext(ctx,
		`SELECT id, name, number, is_active FROM expansions ORDER BY number ASC`)
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

func (r *myContentRepo) CreateExpansion(ctx context.Context, e *domain.Expansion) (*domain.Expansion, error) {
	out := &domain.Expansion{}
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO expansions (name, number, is_active) VALUES (?, ?, ?)`,
			e.Name, e.Number, e.IsActive)
		if err != nil {
			return fmt.Errorf("insert expansion: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert expansion id: %w", err)
		}
		err = tx.QueryRowContext(ctx,
			`SELECT id, name, number, is_active FROM expansions WHERE id = ?`, id).
			Scan(&out.ID, &out.Name, &out.Number, &out.IsActive)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrWriteVerify("expansion", nil)
		}
		if err != nil {
			return fmt.Errorf("scan expansion: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetActiveExpansion keeps the single-statement flag flip but only when the
// target row exists, so an unknown id cannot clear the flag on every row.
// MySQL rejects a direct self-reference in an UPDATE's WHERE subquery (error
// 1093), hence the derived-table wrapper around the existence check.
func (r *myContentRepo) SetActiveExpansion(ctx context.Context, id int64) error {
	res, err := r.s.db.ExecContext(ctx, `
		UPDATE expansions SET is_active = (id = ?)
		WHERE EXISTS (SELECT 1 FROM (SELECT id FROM expansions WHERE id = ?) target)`, id, id)
	if err != nil {
		return fmt.Errorf("set active expansion: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set active expansion: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound("expansion", fmt.Sprint(id))
	}
	return nil
}

func (r *myContentRepo) FindActiveExpansion(ctx context.Context) (*domain.Expansion, error) {
	e := &domain.Expansion{}
	err := r.s.db.QueryRowContext(ctx,
		`SELECT id, name, number, is_active FROM expansions WHERE is_active = 1 LIMIT 1`).
		Scan(&e.ID, &e.Name, &e.Number, &e.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan active expansion: %w", err)
	}
	return e, nil
}

func (r *myContentRepo) ListTiers(ctx context.Context, expansionID int64) ([]domain.RaidTier, error) {
	rows, err := r.s.db.QueryContext(ctx,
		`SELECT id, expansion_id, name, is_current FROM raid_tiers WHERE expansion_id = ? ORDER BY id ASC`,
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

func (r *myContentRepo) CreateTier(ctx context.Context, t *domain.RaidTier) (*domain.RaidTier, error) {
	out := &domain.RaidTier{}
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO raid_tiers (expansion_id, name, is_current) VALUES (?, ?, ?)`,
			t.ExpansionID, t.Name, t.IsCurrent)
		if err != nil {
			return fmt.Errorf("insert raid tier: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert raid tier id: %w", err)
		}
		err = tx.QueryRowContext(ctx,
			`SELECT id, expansion_id, name, is_current FROM raid_tiers WHERE id = ?`, id).
			Scan(&out.ID, &out.ExpansionID, &out.Name, &out.IsCurrent)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrWriteVerify("raid tier", nil)
		}
		if err != nil {
			return fmt.Errorf("scan raid tier: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *myContentRepo) SetCurrentTier(ctx context.Context, id int64) error {
	res, err := r.s.db.ExecContext(ctx, `
		UPDATE raid_tiers SET is_current = (id = ?)
		WHERE EXISTS (SELECT 1 FROM (SELECT id FROM raid_tiers WHERE id = ?) target)`, id, id)
	if err != nil {
		return fmt.Errorf("set current tier: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set current tier: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound("raid tier", fmt.Sprint(id))
	}
	return nil
}

func (r *myContentRepo) FindCurrentTier(ctx context.Context) (*domain.RaidTier, error) {
	t := &domain.RaidTier{}
	err := r.s.db.QueryRowContext(ctx,
		`SELECT id, expansion_id, name, is_current FROM raid_tiers WHERE is_current = 1 LIMIT 1`).
		Scan(&t.ID, &t.ExpansionID, &t.Name, &t.IsCurrent)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan current tier: %w", err)
	}
	return t, nil
}
