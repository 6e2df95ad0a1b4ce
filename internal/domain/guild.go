package domain

import "time"

// Guild is the root entity of the site. Deployments track a single guild;
// lookups without an explicit id default to the first row.
type Guild struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Realm       string    `json:"realm"`
	Region      string    `json:"region"`
	Faction     string    `json:"faction"`
	MemberCount int       `json:"member_count"`
	EmblemURL   string    `json:"emblem_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RankRemoved is the sentinel rank for characters no longer in the roster.
// Sync jobs set it instead of deleting the row so history survives.
const RankRemoved = 99

// Character is a guild roster member, refreshed from the game APIs.
type Character struct {
	ID         int64     `json:"id"`
	GuildID    int64     `json:"guild_id"`
	Name       string    `json:"name"`
	Realm      string    `json:"realm"`
	Class      string    `json:"class"`
	Spec       string    `json:"spec"`
	Role       string    `json:"role"`
	Level      int       `json:"level"`
	ItemLevel  int       `json:"item_level"`
	// MythicPlusScore is stored as an integer; API floats are rounded on write.
	MythicPlusScore int       `json:"mythic_plus_score"`
	Rank            int       `json:"rank"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// InRoster reports whether the character still counts toward the roster.
func (c *Character) InRoster() bool { return c.Rank != RankRemoved }
