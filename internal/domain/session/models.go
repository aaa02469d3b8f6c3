package session

import (
	"errors"
	"time"
)

// TTL is the fixed session lifetime.
const TTL = 7 * 24 * time.Hour

// ErrNotAuthenticated covers missing, invalid and expired sessions alike so
// callers cannot distinguish token guessing from expiry.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrSessionNotFound is returned by the repository when a token is unknown.
var ErrSessionNotFound = errors.New("session not found")

// Session is an opaque server-side token bound to a user email.
type Session struct {
	Token     string    `json:"-"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Identity is what the external auth provider returns for a session id.
type Identity struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}
