package domain

import "time"

// Application statuses.
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

// Application is a recruitment submission from the public site.
type Application struct {
	ID             int64      `json:"id"`
	CharacterName  string     `json:"character_name"`
	Realm          string     `json:"realm"`
	Class          string     `json:"class"`
	Spec           string     `json:"spec"`
	ItemLevel      int        `json:"item_level"`
	BattleTag      string     `json:"battle_tag"`
	AboutText      string     `json:"about_text"`
	RaidExperience string     `json:"raid_experience"`
	Availability   string     `json:"availability"`
	Status         string     `json:"status"`
	ReviewedBy     *int64     `json:"reviewed_by,omitempty"`
	ReviewNotes    string     `json:"review_notes"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ApplicationComment is an admin note on an application, ordered by creation.
type ApplicationComment struct {
	ID            int64     `json:"id"`
	ApplicationID int64     `json:"application_id"`
	AdminID       int64     `json:"admin_id"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}
