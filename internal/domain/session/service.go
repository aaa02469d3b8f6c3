package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"centime/internal/domain/user"
)

// Service implements the auth gateway: external session exchange, session
// issuance and resolution with lazy expiry eviction.
type Service struct {
	provider Provider
	sessions Repository
	users    user.Repository
	now      func() time.Time
}

func NewService(provider Provider, sessions Repository, users user.Repository) *Service {
	return &Service{
		provider: provider,
		sessions: sessions,
		users:    users,
		now:      time.Now,
	}
}

// ExchangeAndIssue resolves an external session id through the auth provider,
// upserts the user record and stores the provider's session token with a
// 7-day expiry. Any provider failure surfaces as ErrNotAuthenticated.
func (s *Service) ExchangeAndIssue(ctx context.Context, sessionID string) (*user.User, string, error) {
	identity, err := s.provider.Exchange(ctx, sessionID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
	}

	u, err := s.ensureUser(ctx, identity.Email, identity.Name, identity.Picture)
	if err != nil {
		return nil, "", err
	}

	if err := s.issue(ctx, identity.SessionToken, identity.Email); err != nil {
		return nil, "", err
	}
	return u, identity.SessionToken, nil
}

// IssueLocal creates a fresh opaque token for an already-verified user
// (local register/login flow).
func (s *Service) IssueLocal(ctx context.Context, email string) (string, error) {
	token := uuid.NewString()
	if err := s.issue(ctx, token, email); err != nil {
		return "", err
	}
	return token, nil
}

func (s *Service) issue(ctx context.Context, token, email string) error {
	now := s.now().UTC()
	return s.sessions.Upsert(ctx, &Session{
		Token:     token,
		Email:     email,
		ExpiresAt: now.Add(TTL),
		CreatedAt: now,
	})
}

// Resolve maps a session token to its user. Expired sessions are deleted on
// sight; a second resolve of the same token fails identically.
func (s *Service) Resolve(ctx context.Context, token string) (*user.User, error) {
	sess, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	if sess.Expired(s.now().UTC()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			return nil, err
		}
		return nil, ErrNotAuthenticated
	}

	u, err := s.users.GetByEmail(ctx, sess.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	return u, nil
}

// Inspect returns the raw session for a token without expiry side effects.
// Used by the auth debug endpoint only.
func (s *Service) Inspect(ctx context.Context, token string) (*Session, error) {
	return s.sessions.GetByToken(ctx, token)
}

// Logout deletes the session behind a token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *Service) ensureUser(ctx context.Context, email, name, picture string) (*user.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}

	params := user.CreateParams{Email: email, Name: name}
	if picture != "" {
		params.Picture = &picture
	}
	created, err := s.users.Create(ctx, params)
	if err != nil {
		// Lost a create race; the existing record wins.
		if errors.Is(err, user.ErrUserExists) {
			return s.users.GetByEmail(ctx, email)
		}
		return nil, err
	}
	return created, nil
}
