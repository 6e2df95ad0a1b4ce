package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/infra"
)

const myGuildCols = "id, name, realm, region, faction, member_count, emblem_url, created_at, updated_at"

type myGuildRepo struct{ s *myStore }

func scanMyGuild(row rowScanner) (*domain.Guild, error) {
	g := &domain.Guild{}
	err := row.Scan(&g.ID, &g.Name, &g.Realm, &g.Region, &g.Faction,
		&g.MemberCount, &g.EmblemURL, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan guild: %w", err)
	}
	return g, nil
}

func (r *myGuildRepo) FindByID(ctx context.Context, id int64) (*domain.Guild, error) {
	return scanMyGuild(r.s.db.QueryRowContext(ctx,
		`SELECT `+myGuildCols+` FROM guilds WHERE id = ?`, id))
}

func (r *myGuildRepo) FindDefault(ctx context.Context) (*domain.Guild, error) {
	return scanMyGuild(r.s.db.QueryRowContext(ctx,
		`SELECT `+myGuildCols+` FROM guilds ORDER BY id ASC LIMIT 1`))
}

func (r *myGuildRepo) FindByNameRealm(ctx context.Context, name, realm string) (*domain.Guild, error) {
	return scanMyGuild(r.s.db.QueryRowContext(ctx,
		`SELECT `+myGuildCols+` FROM guilds WHERE name = ? AND realm = ?`, name, realm))
}

func (r *myGuildRepo) Create(ctx context.Context, g *domain.Guild) (*domain.Guild, error) {
	var out *domain.Guild
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO guilds (name, realm, region, faction, member_count, emblem_url)
			VALUES (?, ?, ?, ?, ?, ?)`,
			g.Name, g.Realm, g.Region, g.Faction, g.MemberCount, g.EmblemURL)
		if err != nil {
			return fmt.Errorf("insert guild: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert guild id: %w", err)
		}
		out, err = scanMyGuild(tx.QueryRowContext(ctx,
			`SELECT `+myGuildCols+` FROM guilds WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if out == nil {
			return domain.ErrWriteVerify("guild", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *myGuildRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) (*domain.Guild, error) {
	set, args, err := buildMySet(fields, guildUpdatable)
	if err != nil {
		return nil, fmt.Errorf("update guild: %w", err)
	}
	var out *domain.Guild
	err = r.s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`UPDATE guilds SET %s WHERE id = ?`, set), append(args, id)...); err != nil {
			return fmt.Errorf("update guild: %w", err)
		}
		out, err = scanMyGuild(tx.QueryRowContext(ctx,
			`SELECT `+myGuildCols+` FROM guilds WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if out == nil {
			return domain.ErrWriteVerify("guild", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

const myCharacterCols = "id, guild_id, name, realm, class, spec, role, level, item_level, mythic_plus_score, `rank`, created_at, updated_at"

type myCharacterRepo struct{ s *myStore }

func scanMyCharacter(row rowScanner) (*domain.Character, error) {
	c := &domain.Character{}
	err := row.Scan(&c.ID, &c.GuildID, &c.Name, &c.Realm, &c.Class, &c.Spec, &c.Role,
		&c.Level, &c.ItemLevel, &c.MythicPlusScore, &c.Rank, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan character: %w", err)
	}
	return c, nil
}

func (r *myCharacterRepo) FindByID(ctx context.Context, id int64) (*domain.Character, error) {
	return scanMyCharacter(r.s.db.QueryRowContext(ctx,
		`SELECT `+myCharacterCols+` FROM characters WHERE id = ?`, id))
}

func (r *myCharacterRepo) FindByNameRealm(ctx context.Context, guildID int64, name, realm string) (*domain.Character, error) {
	return scanMyCharacter(r.s.db.QueryRowContext(ctx,
		`SELECT `+myCharacterCols+` FROM characters WHERE guild_id = ? AND name = ? AND realm = ?`,
		guildID, name, realm))
}

func (r *myCharacterRepo) ListByGuild(ctx context.Context, guildID int64) ([]domain.Character, error) {
	rows, err := r.s.db.QueryContext(ctx,
		`SELECT `+myCharacterCols+" FROM characters WHERE guild_id = ? ORDER BY `rank` ASC, name ASC",
		guildID)
	if err != nil {
		return nil, fmt.Errorf("query characters: %w", err)
	}
	defer rows.Close()

	var out []domain.Character
	for rows.Next() {
		c, err := scanMyCharacter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *myCharacterRepo) CountByGuild(ctx context.Context, guildID int64) (int, error) {
	var n int
	err := r.s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM characters WHERE guild_id = ?`, guildID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count characters: %w", err)
	}
	return n, nil
}

func (r *myCharacterRepo) Create(ctx context.Context, c *domain.Character) (*domain.Character, error) {
	var out *domain.Character
	err := r.s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO characters (guild_id, name, realm, class, spec, role, level, item_level, mythic_plus_score, `+"`rank`"+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.GuildID, c.Name, c.Realm, c.Class, c.Spec, c.Role,
			c.Level, c.ItemLevel, infra.CoerceScore(c.MythicPlusScore), c.Rank)
		if err != nil {
			return fmt.Errorf("insert character: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert character id: %w", err)
		}
		out, err = scanMyCharacter(tx.QueryRowContext(ctx,
			`SELECT `+myCharacterCols+` FROM characters WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if out == nil {
			return domain.ErrWriteVerify("character", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *myCharacterRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) (*domain.Character, error) {
	set, args, err := buildMySet(fields, characterUpdatable)
	if err != nil {
		return nil, fmt.Errorf("update character: %w", err)
	}
	var out *domain.Character
	err = r.s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`UPDATE characters SET %s WHERE id = ?`, set), append(args, id)...); err != nil {
			return fmt.Errorf("update character: %w", err)
		}
		out, err = scanMyCharacter(tx.QueryRowContext(ctx,
			`SELECT `+myCharacterCols+` FROM characters WHERE id = ?`, id))
		if err != nil {
			return err
		}
		if out == nil {
			return domain.ErrWriteVerify("character", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *myCharacterRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM characters WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete character: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete character: %w", err)
	}
	return n > 0, nil
}

func (r *myCharacterRepo) RemoveFromRoster(ctx context.Context, id int64) error {
	res, err := r.s.db.ExecContext(ctx,
		"UPDATE characters SET `rank` = ?, updated_at = NOW() WHERE id = ?",
		domain.RankRemoved, id)
	if err != nil {
		return fmt.Errorf("remove from roster: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove from roster: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound("character", fmt.Sprint(id))
	}
	return nil
}
