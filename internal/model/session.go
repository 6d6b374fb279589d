package model

import "time"

// Cookie names persisted on the browser. Both expire after SessionTTL.
const (
	AuthCookie = "auth-token"
	RoleCookie = "user-role"
)

// SessionTTL is the fixed lifetime of an admin session.
const SessionTTL = 24 * time.Hour

// Session is the authenticated identity for the current browser session.
// A non-expired Session implies the caller passed both the credential check
// and the admin-role lookup. The Token embeds the role claim; RoleCookie is
// only a display hint for the UI.
type Session struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      AdminRole `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
