package domain

import "time"

// Session carries the authenticated user through every movie and import
// operation. It is issued by the auth service on login.
type Session struct {
	UserID    int64
	Username  string
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the session token has passed its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
