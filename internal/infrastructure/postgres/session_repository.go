package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"centime/internal/domain/session"
)

// SessionRepository implements the session.Repository interface for PostgreSQL
type SessionRepository struct {
	db *DB
}

func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Upsert overwrites any session already stored under the same token.
func (r *SessionRepository) Upsert(ctx context.Context, s *session.Session) error {
	query := `
		INSERT INTO sessions (token, email, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (token)
		DO UPDATE SET email = EXCLUDED.email, expires_at = EXCLUDED.expires_at
	`

	if _, err := r.db.ExecContext(ctx, query, s.Token, s.Email, s.ExpiresAt, s.CreatedAt); err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	query := `
		SELECT token, email, expires_at, created_at
		FROM sessions
		WHERE token = $1
	`

	var s session.Session
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&s.Token, &s.Email, &s.ExpiresAt, &s.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, session.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &s, nil
}

// Delete is a no-op for unknown tokens so logout stays idempotent.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
