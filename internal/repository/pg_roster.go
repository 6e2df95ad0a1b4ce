package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/infra"
	"github.com/jackc/pgx/v5"
)

const pgGuildCols = `"id", "name", "realm", "region", "faction", "memberCount", "emblemUrl", "createdAt", "updatedAt"`

type pgGuildRepo struct{ db DBTX }

func scanPgGuild(row pgx.Row) (*domain.Guild, error) {
	g := &domain.Guild{}
	err := row.Scan(&g.ID, &g.Name, &g.Realm, &g.Region, &g.Faction,
		&g.MemberCount, &g.EmblemURL, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan guild: %w", err)
	}
	return g, nil
}

func (r *pgGuildRepo) FindByID(ctx context.Context, id int64) (*domain.Guild, error) {
	return scanPgGuild(r.db.QueryRow(ctx,
		`SELECT `+pgGuildCols+` FROM guilds WHERE "id" = $1`, id))
}

func (r *pgGuildRepo) FindDefault(ctx context.Context) (*domain.Guild, error) {
	return scanPgGuild(r.db.QueryRow(ctx,
		`SELECT `+pgGuildCols+` FROM guilds ORDER BY "id" ASC LIMIT 1`))
}

func (r *pgGuildRepo) FindByNameRealm(ctx context.Context, name, realm string) (*domain.Guild, error) {
	return scanPgGuild(r.db.QueryRow(ctx,
		`SELECT `+pgGuildCols+` FROM guilds WHERE "name" = $1 AND "realm" = $2`, name, realm))
}

func (r *pgGuildRepo) Create(ctx context.Context, g *domain.Guild) (*domain.Guild, error) {
	return scanPgGuild(r.db.QueryRow(ctx, `
		INSERT INTO guilds ("name", "realm", "region", "faction", "memberCount", "emblemUrl")
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+pgGuildCols,
		g.Name, g.Realm, g.Region, g.Faction, g.MemberCount, g.EmblemURL))
}

var guildUpdatable = map[string]bool{
	"name": true, "realm": true, "region": true, "faction": true,
	"memberCount": true, "emblemUrl": true,
}

func (r *pgGuildRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) (*domain.Guild, error) {
	set, args, err := buildPgSet(fields, guildUpdatable)
	if err != nil {
		return nil, fmt.Errorf("update guild: %w", err)
	}
	args = append(args, id)
	return scanPgGuild(r.db.QueryRow(ctx, fmt.Sprintf(
		`UPDATE guilds SET %s WHERE "id" = $%d RETURNING %s`, set, len(args), pgGuildCols),
		args...))
}

const pgCharacterCols = `"id", "guildId", "name", "realm", "class", "spec", "role", "level", "itemLevel", "mythicPlusScore", "rank", "createdAt", "updatedAt"`

type pgCharacterRepo struct{ db DBTX }

func scanPgCharacter(row pgx.Row) (*domain.Character, error) {
	c := &domain.Character{}
	err := row.Scan(&c.ID, &c.GuildID, &c.Name, &c.Realm, &c.Class, &c.Spec, &c.Role,
		&c.Level, &c.ItemLevel, &c.MythicPlusScore, &c.Rank, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan character: %w", err)
	}
	return c, nil
}

func (r *pgCharacterRepo) FindByID(ctx context.Context, id int64) (*domain.Character, error) {
	return scanPgCharacter(r.db.QueryRow(ctx,
		`SELECT `+pgCharacterCols+` FROM characters WHERE "id" = $1`, id))
}

func (r *pgCharacterRepo) FindByNameRealm(ctx context.Context, guildID int64, name, realm string) (*domain.Character, error) {
	return scanPgCharacter(r.db.QueryRow(ctx,
		`SELECT `+pgCharacterCols+` FROM characters WHERE "guildId" = $1 AND "name" = $2 AND "realm" = $3`,
		guildID, name, realm))
}

func (r *pgCharacterRepo) ListByGuild(ctx context.Context, guildID int64) ([]domain.Character, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+pgCharacterCols+` FROM characters WHERE "guildId" = $1 ORDER BY "rank" ASC, "name" ASC`,
		guildID)
	if err != nil {
		return nil, fmt.Errorf("query characters: %w", err)
	}
	defer rows.Close()

	var out []domain.Character
	for rows.Next() {
		c, err := scanPgCharacter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *pgCharacterRepo) CountByGuild(ctx context.Context, guildID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM characters WHERE "guildId" = $1`, guildID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count characters: %w", err)
	}
	return n, nil
}

func (r *pgCharacterRepo) Create(ctx context.Context, c *domain.Character) (*domain.Character, error) {
	return scanPgCharacter(r.db.QueryRow(ctx, `
		INSERT INTO characters ("guildId", "name", "realm", "class", "spec", "role", "level", "itemLevel", "mythicPlusScore", "rank")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+pgCharacterCols,
		c.GuildID, c.Name, c.Realm, c.Class, c.Spec, c.Role,
		c.Level, c.ItemLevel, infra.CoerceScore(c.MythicPlusScore), c.Rank))
}

var characterUpdatable = map[string]bool{
	"name": true, "realm": true, "class": true, "spec": true, "role": true,
	"level": true, "itemLevel": true, "mythicPlusScore": true, "rank": true,
}

func (r *pgCharacterRepo) Update(ctx context.Context, id int64, fields map[string]interface{}) (*domain.Character, error) {
	set, args, err := buildPgSet(fields, characterUpdatable)
	if err != nil {
		return nil, fmt.Errorf("update character: %w", err)
	}
	args = append(args, id)
	return scanPgCharacter(r.db.QueryRow(ctx, fmt.Sprintf(
		`UPDATE characters SET %s WHERE "id" = $%d RETURNING %s`, set, len(args), pgCharacterCols),
		args...))
}

func (r *pgCharacterRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM characters WHERE "id" = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete character: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *pgCharacterRepo) RemoveFromRoster(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE characters SET "rank" = $1, "updatedAt" = now() WHERE "id" = $2`,
		domain.RankRemoved, id)
	if err != nil {
		return fmt.Errorf("remove from roster: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound("character", fmt.Sprint(id))
	}
	return nil
}
