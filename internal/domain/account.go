package domain

import "time"

// AdminUser is a panel account. Usernames are unique case-insensitively.
type AdminUser struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// User is an end-user account, optionally linked to a Battle.net identity.
type User struct {
	ID             int64      `json:"id"`
	BattleNetID    *int64     `json:"battle_net_id,omitempty"`
	BattleTag      *string    `json:"battle_tag,omitempty"`
	AccessToken    *string    `json:"-"`
	RefreshToken   *string    `json:"-"`
	TokenExpiresAt *time.Time `json:"-"`
	IsGuildMember  bool       `json:"is_guild_member"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// UserCharacter links a user to a roster character. A user may link several
// characters; at most one per user carries IsMain.
type UserCharacter struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	CharacterID int64     `json:"character_id"`
	IsMain      bool      `json:"is_main"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created_at"`
}

// MediaFile is a metadata row for an uploaded file. The bytes live on disk;
// only the record is managed here.
type MediaFile struct {
	ID         int64     `json:"id"`
	FileName   string    `json:"file_name"`
	FilePath   string    `json:"file_path"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	UploadedBy *int64    `json:"uploaded_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
