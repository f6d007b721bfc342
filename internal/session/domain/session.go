package domain

import "time"

// Session is a durable, revocable record of a login. Its id is embedded in
// every token minted for it; revoking the session blocks reissuance without
// deleting the row, so the audit trail survives logout.
type Session struct {
	ID        string
	UserID    string
	Valid     bool // true until the session is invalidated; never flips back
	UserAgent string
	CreatedAt time.Time
	UpdatedAt time.Time
}
