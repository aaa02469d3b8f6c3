package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"centime/internal/domain/user"
)

type memSessionRepo struct {
	sessions map[string]*Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*Session)}
}

func (m *memSessionRepo) Upsert(ctx context.Context, s *Session) error {
	copied := *s
	m.sessions[s.Token] = &copied
	return nil
}

func (m *memSessionRepo) GetByToken(ctx context.Context, token string) (*Session, error) {
	s, ok := m.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *memSessionRepo) Delete(ctx context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

type memUserRepo struct {
	users map[string]*user.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*user.User)}
}

func (m *memUserRepo) Create(ctx context.Context, params user.CreateParams) (*user.User, error) {
	if _, ok := m.users[params.Email]; ok {
		return nil, user.ErrUserExists
	}
	u := &user.User{Email: params.Email, Name: params.Name, Picture: params.Picture, CreatedAt: time.Now()}
	m.users[params.Email] = u
	return u, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

type mockProvider struct {
	identity *Identity
	err      error
}

func (m *mockProvider) Exchange(ctx context.Context, sessionID string) (*Identity, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.identity, nil
}

func newTestService(p Provider, sessions Repository, users user.Repository, now time.Time) *Service {
	svc := NewService(p, sessions, users)
	svc.now = func() time.Time { return now }
	return svc
}

func TestExchangeAndIssueCreatesUserAndSession(t *testing.T) {
	ctx := context.Background()
	sessions := newMemSessionRepo()
	users := newMemUserRepo()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	provider := &mockProvider{identity: &Identity{
		Email:        "ana@example.com",
		Name:         "Ana",
		Picture:      "https://img.example.com/ana.png",
		SessionToken: "tok-123",
	}}

	svc := newTestService(provider, sessions, users, now)

	u, token, err := svc.ExchangeAndIssue(ctx, "ext-session-id")
	if err != nil {
		t.Fatalf("ExchangeAndIssue() error = %v", err)
	}
	if token != "tok-123" {
		t.Errorf("token = %q, want provider session token", token)
	}
	if u.Email != "ana@example.com" {
		t.Errorf("user email = %q", u.Email)
	}

	stored, err := sessions.GetByToken(ctx, "tok-123")
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if want := now.Add(TTL); !stored.ExpiresAt.Equal(want) {
		t.Errorf("ExpiresAt = %v, want %v", stored.ExpiresAt, want)
	}

	// Second exchange for the same user must not duplicate the user record.
	if _, _, err := svc.ExchangeAndIssue(ctx, "ext-session-id"); err != nil {
		t.Fatalf("second ExchangeAndIssue() error = %v", err)
	}
	if len(users.users) != 1 {
		t.Errorf("user count = %d, want 1", len(users.users))
	}
}

func TestExchangeProviderFailure(t *testing.T) {
	svc := newTestService(
		&mockProvider{err: errors.New("provider unreachable")},
		newMemSessionRepo(), newMemUserRepo(), time.Now(),
	)

	_, _, err := svc.ExchangeAndIssue(context.Background(), "bad")
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("error = %v, want ErrNotAuthenticated", err)
	}
}

func TestResolveUnknownToken(t *testing.T) {
	svc := newTestService(&mockProvider{}, newMemSessionRepo(), newMemUserRepo(), time.Now())

	if _, err := svc.Resolve(context.Background(), "nope"); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("error = %v, want ErrNotAuthenticated", err)
	}
}

func TestResolveExpiredSessionEvictsLazily(t *testing.T) {
	ctx := context.Background()
	sessions := newMemSessionRepo()
	users := newMemUserRepo()
	if _, err := users.Create(ctx, user.CreateParams{Email: "bob@example.com", Name: "Bob"}); err != nil {
		t.Fatal(err)
	}

	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	sessions.sessions["tok"] = &Session{
		Token: "tok", Email: "bob@example.com",
		ExpiresAt: issued.Add(TTL), CreatedAt: issued,
	}

	// One hour past expiry.
	svc := newTestService(&mockProvider{}, sessions, users, issued.Add(TTL).Add(time.Hour))

	if _, err := svc.Resolve(ctx, "tok"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("first Resolve() error = %v, want ErrNotAuthenticated", err)
	}
	if _, ok := sessions.sessions["tok"]; ok {
		t.Error("expired session was not evicted")
	}

	// Idempotent: the second read behaves identically.
	if _, err := svc.Resolve(ctx, "tok"); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("second Resolve() error = %v, want ErrNotAuthenticated", err)
	}
}

func TestResolveValidSession(t *testing.T) {
	ctx := context.Background()
	sessions := newMemSessionRepo()
	users := newMemUserRepo()
	if _, err := users.Create(ctx, user.CreateParams{Email: "bob@example.com", Name: "Bob"}); err != nil {
		t.Fatal(err)
	}

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	sessions.sessions["tok"] = &Session{
		Token: "tok", Email: "bob@example.com",
		ExpiresAt: now.Add(time.Hour), CreatedAt: now.Add(-time.Hour),
	}

	svc := newTestService(&mockProvider{}, sessions, users, now)
	u, err := svc.Resolve(ctx, "tok")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if u.Email != "bob@example.com" {
		t.Errorf("resolved email = %q", u.Email)
	}
}

func TestIssueLocalGeneratesToken(t *testing.T) {
	ctx := context.Background()
	sessions := newMemSessionRepo()
	svc := newTestService(&mockProvider{}, sessions, newMemUserRepo(), time.Now())

	token, err := svc.IssueLocal(ctx, "carol@example.com")
	if err != nil {
		t.Fatalf("IssueLocal() error = %v", err)
	}
	if token == "" {
		t.Fatal("IssueLocal() returned empty token")
	}
	if _, err := sessions.GetByToken(ctx, token); err != nil {
		t.Errorf("issued session not stored: %v", err)
	}
}

func TestLogoutDeletesSession(t *testing.T) {
	ctx := context.Background()
	sessions := newMemSessionRepo()
	sessions.sessions["tok"] = &Session{Token: "tok", Email: "x@example.com", ExpiresAt: time.Now().Add(time.Hour)}

	svc := newTestService(&mockProvider{}, sessions, newMemUserRepo(), time.Now())
	if err := svc.Logout(ctx, "tok"); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, ok := sessions.sessions["tok"]; ok {
		t.Error("session still present after logout")
	}
	// Unknown token logout is a no-op.
	if err := svc.Logout(ctx, "tok"); err != nil {
		t.Errorf("repeat Logout() error = %v", err)
	}
}
