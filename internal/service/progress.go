package service

import (
	"context"
	"log/slog"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/repository"
)

// ProgressService handles raid progress reads and curation.
type ProgressService struct {
	store  repository.Store
	logger *slog.Logger
}

// NewProgressService creates a ProgressService.
func NewProgressService(store repository.Store, logger *slog.Logger) *ProgressService {
	return &ProgressService{store: store, logger: logger}
}

// RaidProgress is the public progress payload for one raid and difficulty.
type RaidProgress struct {
	RaidName   string            `json:"raid_name"`
	Difficulty string            `json:"difficulty"`
	Defeated   int               `json:"defeated"`
	Total      int               `json:"total"`
	Bosses     []domain.RaidBoss `json:"bosses"`
}

// Progress returns bosses for a raid and difficulty with a defeated tally.
// Read failures degrade to an empty progress block.
func (s *ProgressService) Progress(ctx context.Context, raidName, difficulty string) *RaidProgress {
	out := &RaidProgress{RaidName: raidName, Difficulty: difficulty, Bosses: []domain.RaidBoss{}}

	g, err := s.store.Guilds().FindDefault(ctx)
	if err != nil || g == nil {
		if err != nil {
			s.logger.Error("load guild for progress", "error", err)
		}
		return out
	}

	bosses, err := s.store.RaidBosses().ListByRaid(ctx, g.ID, raidName, difficulty)
	if err != nil {
		s.logger.Error("list raid bosses", "raid", raidName, "difficulty", difficulty, "error", err)
		return out
	}

	out.Bosses = bosses
	out.Total = len(bosses)
	for _, b := range bosses {
		if b.Defeated {
			out.Defeated++
		}
	}
	return out
}

// UpsertBoss creates or updates a boss row by its informal identity. No
// constraint backs the tuple, so the lookup-then-write here is what keeps
// refreshes from piling up duplicates.
func (s *ProgressService) UpsertBoss(ctx context.Context, b *domain.RaidBoss) (*domain.RaidBoss, error) {
	if b.Name == "" || b.RaidName == "" {
		return nil, domain.ErrValidation("boss name and raid name are required")
	}
	if err := domain.ValidateDifficulty(b.Difficulty); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	existing, err := s.store.RaidBosses().Find(ctx, b.GuildID, b.Name, b.RaidName, b.Difficulty)
	if err != nil {
		return nil, domain.ErrInternal("find raid boss", err)
	}

	if existing == nil {
		created, err := s.store.RaidBosses().Create(ctx, b)
		if err != nil {
			return nil, wrapWrite("create raid boss", err)
		}
		return created, nil
	}

	fields := map[string]interface{}{
		"defeated":  b.Defeated,
		"pullCount": b.PullCount,
	}
	if b.BestTimeMs != nil {
		fields["bestTimeMs"] = *b.BestTimeMs
	}
	if b.BestParse != nil {
		fields["bestParse"] = *b.BestParse
	}
	if b.LastKillAt != nil {
		fields["lastKillAt"] = *b.LastKillAt
	}
	if b.WarcraftLogsID != nil {
		fields["warcraftlogsId"] = *b.WarcraftLogsID
	}

	updated, err := s.store.RaidBosses().Update(ctx, existing.ID, fields)
	if err != nil {
		return nil, wrapWrite("update raid boss", err)
	}
	return updated, nil
}

// UpdateBoss applies a partial update to a boss row.
func (s *ProgressService) UpdateBoss(ctx context.Context, id int64, fields map[string]interface{}) (*domain.RaidBoss, error) {
	updated, err := s.store.RaidBosses().Update(ctx, id, fields)
	if err != nil {
		return nil, wrapWrite("update raid boss", err)
	}
	if updated == nil {
		return nil, domain.ErrNotFound("raid boss", itoa(id))
	}
	return updated, nil
}

// DeleteBoss removes a boss row.
func (s *ProgressService) DeleteBoss(ctx context.Context, id int64) error {
	removed, err := s.store.RaidBosses().Delete(ctx, id)
	if err != nil {
		return wrapWrite("delete raid boss", err)
	}
	if !removed {
		return domain.ErrNotFound("raid boss", itoa(id))
	}
	return nil
}

// ListExpansions returns all expansions. Read failures degrade to empty.
func (s *ProgressService) ListExpansions(ctx context.Context) []domain.Expansion {
	out, err := s.store.Content().ListExpansions(ctx)
	if err != nil {
		s.logger.Error("list expansions", "error", err)
		return []domain.Expansion{}
	}
	return out
}

// CreateExpansion inserts an expansion.
func (s *ProgressService) CreateExpansion(ctx context.Context, e *domain.Expansion) (*domain.Expansion, error) {
	if e.Name == "" {
		return nil, domain.ErrValidation("expansion name is required")
	}
	created, err := s.store.Content().CreateExpansion(ctx, e)
	if err != nil {
		return nil, wrapWrite("create expansion", err)
	}
	return created, nil
}

// SetActiveExpansion makes the given expansion the single active one.
func (s *ProgressService) SetActiveExpansion(ctx context.Context, id int64) error {
	if err := s.store.Content().SetActiveExpansion(ctx, id); err != nil {
		return wrapWrite("set active expansion", err)
	}
	return nil
}

// ListTiers returns raid tiers for an expansion. Read failures degrade to empty.
func (s *ProgressService) ListTiers(ctx context.Context, expansionID int64) []domain.RaidTier {
	out, err := s.store.Content().ListTiers(ctx, expansionID)
	if err != nil {
		s.logger.Error("list raid tiers", "expansion_id", expansionID, "error", err)
		return []domain.RaidTier{}
	}
	return out
}

// CreateTier inserts a raid tier.
func (s *ProgressService) CreateTier(ctx context.Context, t *domain.RaidTier) (*domain.RaidTier, error) {
	if t.Name == "" {
		return nil, domain.ErrValidation("tier name is required")
	}
	created, err := s.store.Content().CreateTier(ctx, t)
	if err != nil {
		return nil, wrapWrite("create raid tier", err)
	}
	return created, nil
}

// SetCurrentTier makes the given tier the single current one.
func (s *ProgressService) SetCurrentTier(ctx context.Context, id int64) error {
	if err := s.store.Content().SetCurrentTier(ctx, id); err != nil {
		return wrapWrite("set current raid tier", err)
	}
	return nil
}
