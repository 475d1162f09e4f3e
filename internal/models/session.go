package models

import "time"

// Session is server-side state keyed by the opaque id carried in the session cookie.
type Session struct {
	ID        string
	UserID    *int64 // nil until login
	CSRFToken string // empty until first issued
	ExpiresAt time.Time
	CreatedAt time.Time
}

// LoggedIn reports whether the session is bound to a user.
func (s *Session) LoggedIn() bool {
	return s != nil && s.UserID != nil
}
