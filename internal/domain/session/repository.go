package session

import "context"

// Repository defines the interface for session data access.
type Repository interface {
	// Upsert inserts or overwrites the session stored under its token.
	Upsert(ctx context.Context, s *Session) error

	// GetByToken retrieves a session; ErrSessionNotFound when absent.
	GetByToken(ctx context.Context, token string) (*Session, error)

	// Delete removes a session. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
}

// Provider exchanges an opaque external session id for a verified identity.
type Provider interface {
	Exchange(ctx context.Context, sessionID string) (*Identity, error)
}
