// Package service holds the business layer between HTTP handlers and the
// repositories. Error handling is deliberately asymmetric here: write
// failures are wrapped and returned as domain errors, read failures on public
// pages are logged and degraded to empty results so the site keeps rendering.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/repository"
)

// GuildService handles guild summary and roster operations.
type GuildService struct {
	store  repository.Store
	logger *slog.Logger
}

// NewGuildService creates a GuildService.
func NewGuildService(store repository.Store, logger *slog.Logger) *GuildService {
	return &GuildService{store: store, logger: logger}
}

// GuildSummary is the public summary payload.
type GuildSummary struct {
	Guild       *domain.Guild `json:"guild"`
	RosterCount int           `json:"roster_count"`
}

// Summary returns the default guild with its roster count. Read failures
// degrade to an empty summary.
func (s *GuildService) Summary(ctx context.Context) *GuildSummary {
	g, err := s.store.Guilds().FindDefault(ctx)
	if err != nil {
		s.logger.Error("load guild summary", "error", err)
		return &GuildSummary{}
	}
	if g == nil {
		return &GuildSummary{}
	}

	count, err := s.store.Characters().CountByGuild(ctx, g.ID)
	if err != nil {
		s.logger.Error("count roster", "guild_id", g.ID, "error", err)
		count = 0
	}

	return &GuildSummary{Guild: g, RosterCount: count}
}

// Roster returns the default guild's roster ordered by rank. Read failures
// degrade to an empty list.
func (s *GuildService) Roster(ctx context.Context) []domain.Character {
	g, err := s.store.Guilds().FindDefault(ctx)
	if err != nil || g == nil {
		if err != nil {
			s.logger.Error("load guild for roster", "error", err)
		}
		return []domain.Character{}
	}

	roster, err := s.store.Characters().ListByGuild(ctx, g.ID)
	if err != nil {
		s.logger.Error("list roster", "guild_id", g.ID, "error", err)
		return []domain.Character{}
	}
	return roster
}

// CreateGuild inserts a guild after validating its region.
func (s *GuildService) CreateGuild(ctx context.Context, g *domain.Guild) (*domain.Guild, error) {
	if g.Name == "" || g.Realm == "" {
		return nil, domain.ErrValidation("guild name and realm are required")
	}
	if err := domain.ValidateRegion(g.Region); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	existing, err := s.store.Guilds().FindByNameRealm(ctx, g.Name, g.Realm)
	if err != nil {
		return nil, domain.ErrInternal("check existing guild", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("guild already exists")
	}

	created, err := s.store.Guilds().Create(ctx, g)
	if err != nil {
		return nil, wrapWrite("create guild", err)
	}
	return created, nil
}

// UpdateGuild applies a partial update to a guild.
func (s *GuildService) UpdateGuild(ctx context.Context, id int64, fields map[string]interface{}) (*domain.Guild, error) {
	updated, err := s.store.Guilds().Update(ctx, id, fields)
	if err != nil {
		return nil, wrapWrite("update guild", err)
	}
	if updated == nil {
		return nil, domain.ErrNotFound("guild", itoa(id))
	}
	return updated, nil
}

// AddCharacter inserts a roster character for the given guild.
func (s *GuildService) AddCharacter(ctx context.Context, c *domain.Character) (*domain.Character, error) {
	if err := domain.ValidateCharacterName(c.Name); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if c.Realm == "" {
		return nil, domain.ErrValidation("realm is required")
	}

	created, err := s.store.Characters().Create(ctx, c)
	if err != nil {
		return nil, wrapWrite("create character", err)
	}
	return created, nil
}

// UpdateCharacter applies a partial update to a character.
func (s *GuildService) UpdateCharacter(ctx context.Context, id int64, fields map[string]interface{}) (*domain.Character, error) {
	updated, err := s.store.Characters().Update(ctx, id, fields)
	if err != nil {
		return nil, wrapWrite("update character", err)
	}
	if updated == nil {
		return nil, domain.ErrNotFound("character", itoa(id))
	}
	return updated, nil
}

// RemoveFromRoster marks a character as out of the roster via the sentinel
// rank, keeping the row for history.
func (s *GuildService) RemoveFromRoster(ctx context.Context, id int64) error {
	if err := s.store.Characters().RemoveFromRoster(ctx, id); err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return wrapWrite("remove character from roster", err)
	}
	return nil
}

// DeleteCharacter removes a character row entirely.
func (s *GuildService) DeleteCharacter(ctx context.Context, id int64) error {
	removed, err := s.store.Characters().Delete(ctx, id)
	if err != nil {
		return wrapWrite("delete character", err)
	}
	if !removed {
		return domain.ErrNotFound("character", itoa(id))
	}
	return nil
}
