package repository

import (
	"context"
	"time"

	"github.com/guttakrutt/guildsite/internal/domain"
)

// Store is the sole interface through which the rest of the system reads and
// writes persisted state. Two implementations exist, one per dialect, selected
// once at startup by NewStore. Callers never learn which one they got.
//
// Read methods return (nil, nil) or an empty slice when nothing matches.
// Write methods return the persisted row as the database sees it: via native
// RETURNING on Postgres, via write-then-re-select inside a transaction on
// MySQL. Delete methods are idempotent and report whether a row was removed.
type Store interface {
	Dialect() Dialect
	Ping(ctx context.Context) error
	Close()

	Guilds() GuildRepository
	Characters() CharacterRepository
	RaidBosses() RaidBossRepository
	Applications() ApplicationRepository
	AdminUsers() AdminUserRepository
	Users() UserRepository
	UserCharacters() UserCharacterRepository
	WebLogs() WebLogRepository
	Content() ContentRepository
	Media() MediaRepository

	// DashboardStats returns the admin dashboard counters as a camelCase-keyed
	// map, regardless of dialect.
	DashboardStats(ctx context.Context) (map[string]interface{}, error)
}

// GuildRepository provides access to the guilds table.
type GuildRepository interface {
	// FindByID returns a guild by id, or nil if not found.
	FindByID(ctx context.Context, id int64) (*domain.Guild, error)

	// FindDefault returns the first guild row. Deployments track one guild;
	// most queries start here.
	FindDefault(ctx context.Context) (*domain.Guild, error)

	// FindByNameRealm returns a guild by name and realm.
	FindByNameRealm(ctx context.Context, name, realm string) (*domain.Guild, error)

	// Create inserts a guild and returns the persisted row.
	Create(ctx context.Context, g *domain.Guild) (*domain.Guild, error)

	// Update applies a partial update keyed by camelCase field names and
	// returns the updated row. Unknown fields are rejected.
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*domain.Guild, error)
}

// CharacterRepository provides access to the characters table.
type CharacterRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Character, error)

	// FindByNameRealm returns a character in the guild by name and realm.
	FindByNameRealm(ctx context.Context, guildID int64, name, realm string) (*domain.Character, error)

	// ListByGuild returns all roster rows for a guild ordered by rank, name.
	ListByGuild(ctx context.Context, guildID int64) ([]domain.Character, error)

	// CountByGuild counts roster rows for a guild.
	CountByGuild(ctx context.Context, guildID int64) (int, error)

	Create(ctx context.Context, c *domain.Character) (*domain.Character, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*domain.Character, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// RemoveFromRoster marks a character as no longer in the roster by setting
	// the sentinel rank instead of deleting the row.
	RemoveFromRoster(ctx context.Context, id int64) error
}

// RaidBossRepository provides access to the raid_bosses table.
type RaidBossRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.RaidBoss, error)

	// Find looks up a boss by its informal identity. Refresh jobs call this
	// before Create to avoid duplicates, since no constraint enforces the tuple.
	Find(ctx context.Context, guildID int64, name, raidName, difficulty string) (*domain.RaidBoss, error)

	ListByGuild(ctx context.Context, guildID int64) ([]domain.RaidBoss, error)
	ListByRaid(ctx context.Context, guildID int64, raidName, difficulty string) ([]domain.RaidBoss, error)

	Create(ctx context.Context, b *domain.RaidBoss) (*domain.RaidBoss, error)
	Update(ctx context.Context, id int64, fields map[string]interface{}) (*domain.RaidBoss, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ApplicationRepository provides access to recruitment applications and their
// admin comments.
type ApplicationRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Application, error)
	List(ctx context.Context) ([]domain.Application, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Application, error)

	Create(ctx context.Context, a *domain.Application) (*domain.Application, error)

	// ChangeStatus moves an application through review and records who
	// reviewed it and why.
	ChangeStatus(ctx context.Context, id int64, status string, reviewerID int64, notes string) (*domain.Application, error)

	AddComment(ctx context.Context, c *domain.ApplicationComment) (*domain.ApplicationComment, error)

	// ListComments returns comments for an application ordered by creation time.
	ListComments(ctx context.Context, applicationID int64) ([]domain.ApplicationComment, error)
}

// AdminUserRepository provides access to panel accounts.
type AdminUserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.AdminUser, error)

	// FindByUsername looks up an admin case-insensitively.
	FindByUsername(ctx context.Context, username string) (*domain.AdminUser, error)

	List(ctx context.Context) ([]domain.AdminUser, error)
	Create(ctx context.Context, u *domain.AdminUser) (*domain.AdminUser, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	TouchLastLogin(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// UserRepository provides access to end-user accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByBattleNetID(ctx context.Context, battleNetID int64) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) (*domain.User, error)

	// UpdateTokens stores refreshed OAuth credentials.
	UpdateTokens(ctx context.Context, id int64, accessToken, refreshToken string, expiresAt time.Time) error

	SetGuildMember(ctx context.Context, id int64, member bool) error
}

// UserCharacterRepository provides access to user-character links.
type UserCharacterRepository interface {
	Link(ctx context.Context, uc *domain.UserCharacter) (*domain.UserCharacter, error)
	Unlink(ctx context.Context, userID, characterID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.UserCharacter, error)

	// SetMain marks exactly one of the user's links as main in a single
	// conditional update, so two concurrent calls cannot leave zero or two
	// mains behind.
	SetMain(ctx context.Context, userID, characterID int64) error

	FindMain(ctx context.Context, userID int64) (*domain.UserCharacter, error)
	SetVerified(ctx context.Context, id int64, verified bool) error
}

// WebLogRepository provides access to the append-only operational log.
type WebLogRepository interface {
	Insert(ctx context.Context, l *domain.WebLog) (*domain.WebLog, error)
	ListRecent(ctx context.Context, limit int) ([]domain.WebLog, error)

	// PruneBefore deletes rows older than the cutoff and reports how many went.
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)

	Delete(ctx context.Context, id int64) (bool, error)
}

// ContentRepository provides access to expansion and raid-tier reference data.
type ContentRepository interface {
	ListExpansions(ctx context.Context) ([]domain.Expansion, error)
	CreateExpansion(ctx context.Context, e *domain.Expansion) (*domain.Expansion, error)

	// SetActiveExpansion makes the given expansion the single active one.
	// An unknown id leaves every flag untouched and reports not found.
	SetActiveExpansion(ctx context.Context, id int64) error
	FindActiveExpansion(ctx context.Context) (*domain.Expansion, error)

	ListTiers(ctx context.Context, expansionID int64) ([]domain.RaidTier, error)
	CreateTier(ctx context.Context, t *domain.RaidTier) (*domain.RaidTier, error)

	// SetCurrentTier makes the given tier the single current one, with the
	// same unknown-id behavior as SetActiveExpansion.
	SetCurrentTier(ctx context.Context, id int64) error
	FindCurrentTier(ctx context.Context) (*domain.RaidTier, error)
}

// MediaRepository provides access to uploaded-media metadata.
type MediaRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.MediaFile, error)
	List(ctx context.Context) ([]domain.MediaFile, error)
	Create(ctx context.Context, m *domain.MediaFile) (*domain.MediaFile, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
