package domain

import "time"

// Raid difficulties as reported by the game APIs.
const (
	DifficultyMythic = "mythic"
	DifficultyHeroic = "heroic"
	DifficultyNormal = "normal"
)

// RaidBoss is one encounter row per (boss, raid, difficulty, guild).
// Uniqueness of that tuple is by convention, not constraint: refresh jobs
// check for an existing row before creating, and duplicates are tolerated.
type RaidBoss struct {
	ID             int64      `json:"id"`
	GuildID        int64      `json:"guild_id"`
	Name           string     `json:"name"`
	RaidName       string     `json:"raid_name"`
	Difficulty     string     `json:"difficulty"`
	Defeated       bool       `json:"defeated"`
	PullCount      int        `json:"pull_count"`
	BestTimeMs     *int64     `json:"best_time_ms,omitempty"`
	BestParse      *float64   `json:"best_parse,omitempty"`
	LastKillAt     *time.Time `json:"last_kill_at,omitempty"`
	WarcraftLogsID *string    `json:"warcraftlogs_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Expansion is reference data for a game content version. At most one row
// carries IsActive.
type Expansion struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Number   int    `json:"number"`
	IsActive bool   `json:"is_active"`
}

// RaidTier is a raid release within an expansion. At most one row carries
// IsCurrent.
type RaidTier struct {
	ID          int64  `json:"id"`
	ExpansionID int64  `json:"expansion_id"`
	Name        string `json:"name"`
	IsCurrent   bool   `json:"is_current"`
}
