package domain

import "time"

// Session is a server-side login record. TokenHash is the SHA-256 of the
// opaque cookie value; the raw token is never persisted.
type Session struct {
	ID        string
	UserID    string
	TokenHash string
	IPAddress string
	UserAgent string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its fixed expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// SessionContext carries the caller's authentication state into service
// operations, replacing ambient per-request session state. The zero value is
// anonymous. TokenHash identifies the backing session row for logout.
type SessionContext struct {
	UserID    string
	SessionID string
	TokenHash string
}

// Anonymous reports whether the context has no authenticated user.
func (c SessionContext) Anonymous() bool {
	return c.UserID == ""
}
