package domain

import "time"

// WebLog statuses.
const (
	LogStatusOK    = "ok"
	LogStatusError = "error"
)

// WebLog is an append-only operational log row, pruned by age.
type WebLog struct {
	ID        int64     `json:"id"`
	Operation string    `json:"operation"`
	Status    string    `json:"status"`
	Detail    string    `json:"detail"`
	UserID    *int64    `json:"user_id,omitempty"`
	AdminID   *int64    `json:"admin_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
