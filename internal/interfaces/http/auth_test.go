package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"centime/internal/domain/session"
	"centime/internal/domain/user"
	"centime/internal/shared/auth"
)

// MockSessionRepo implements session.Repository over a map keyed by token.
type MockSessionRepo struct {
	sessions map[string]*session.Session
}

func NewMockSessionRepo() *MockSessionRepo {
	return &MockSessionRepo{sessions: map[string]*session.Session{}}
}

func (m *MockSessionRepo) Upsert(ctx context.Context, s *session.Session) error {
	m.sessions[s.Token] = s
	return nil
}

func (m *MockSessionRepo) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	s, ok := m.sessions[token]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return s, nil
}

func (m *MockSessionRepo) Delete(ctx context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

// MockUserRepo implements user.Repository over a map keyed by email.
type MockUserRepo struct {
	users map[string]*user.User
}

func NewMockUserRepo(users ...*user.User) *MockUserRepo {
	m := &MockUserRepo{users: map[string]*user.User{}}
	for _, u := range users {
		m.users[u.Email] = u
	}
	return m
}

func (m *MockUserRepo) Create(ctx context.Context, params user.CreateParams) (*user.User, error) {
	if _, ok := m.users[params.Email]; ok {
		return nil, user.ErrUserExists
	}
	u := &user.User{
		Email:        params.Email,
		Name:         params.Name,
		Picture:      params.Picture,
		PasswordHash: params.PasswordHash,
	}
	m.users[u.Email] = u
	return u, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

// MockProvider implements session.Provider.
type MockProvider struct {
	ExchangeFunc func(ctx context.Context, sessionID string) (*session.Identity, error)
}

func (m *MockProvider) Exchange(ctx context.Context, sessionID string) (*session.Identity, error) {
	return m.ExchangeFunc(ctx, sessionID)
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == "session_token" {
			return c
		}
	}
	return nil
}

func TestHandleSession(t *testing.T) {
	provider := &MockProvider{
		ExchangeFunc: func(ctx context.Context, sessionID string) (*session.Identity, error) {
			if sessionID != "ext-123" {
				return nil, session.ErrNotAuthenticated
			}
			return &session.Identity{
				Email:        "user@example.com",
				Name:         "Test User",
				SessionToken: "issued-token",
			}, nil
		},
	}
	sessions := NewMockSessionRepo()
	users := NewMockUserRepo()
	handler := NewAuthHandler(session.NewService(provider, sessions, users), users)

	t.Run("Missing Session ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/session", nil)
		rr := httptest.NewRecorder()
		handler.HandleSession(rr, req)

		if rr.Code != http.StatusUnprocessableEntity {
			t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusUnprocessableEntity)
		}
	})

	t.Run("Provider Rejects", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/session", nil)
		req.Header.Set("X-Session-ID", "bogus")
		rr := httptest.NewRecorder()
		handler.HandleSession(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusUnauthorized)
		}
	})

	t.Run("Success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/session", nil)
		req.Header.Set("X-Session-ID", "ext-123")
		rr := httptest.NewRecorder()
		handler.HandleSession(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("handler returned wrong status code: got %v want %v, body %s", rr.Code, http.StatusOK, rr.Body.String())
		}

		cookie := sessionCookie(rr)
		if cookie == nil {
			t.Fatal("expected a session_token cookie")
		}
		if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteNoneMode {
			t.Errorf("cookie flags wrong: %+v", cookie)
		}

		if _, err := sessions.GetByToken(context.Background(), cookie.Value); err != nil {
			t.Errorf("issued token should be stored: %v", err)
		}
		if _, err := users.GetByEmail(context.Background(), "user@example.com"); err != nil {
			t.Errorf("exchanged identity should create the user: %v", err)
		}

		var u user.User
		if err := json.Unmarshal(rr.Body.Bytes(), &u); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if u.Email != "user@example.com" {
			t.Errorf("returned email = %q, want user@example.com", u.Email)
		}
	})
}

func TestHandleRegisterAndLogin(t *testing.T) {
	provider := &MockProvider{
		ExchangeFunc: func(ctx context.Context, sessionID string) (*session.Identity, error) {
			return nil, session.ErrNotAuthenticated
		},
	}
	sessions := NewMockSessionRepo()
	users := NewMockUserRepo()
	handler := NewAuthHandler(session.NewService(provider, sessions, users), users)

	register := func(email, password string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{"email": email, "name": "Test User", "password": password})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		handler.HandleRegister(rr, req)
		return rr
	}
	login := func(email, password string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{"email": email, "password": password})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		handler.HandleLogin(rr, req)
		return rr
	}

	if rr := register("user@example.com", "hunter22"); rr.Code != http.StatusOK {
		t.Fatalf("register: got %v want %v, body %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	if rr := register("user@example.com", "hunter22"); rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("duplicate register: got %v want %v", rr.Code, http.StatusUnprocessableEntity)
	}
	if rr := register("", ""); rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty register: got %v want %v", rr.Code, http.StatusUnprocessableEntity)
	}

	if rr := login("user@example.com", "hunter22"); rr.Code != http.StatusOK {
		t.Errorf("login: got %v want %v", rr.Code, http.StatusOK)
	} else if sessionCookie(rr) == nil {
		t.Error("login should set a session cookie")
	}
	if rr := login("user@example.com", "wrong"); rr.Code != http.StatusUnauthorized {
		t.Errorf("bad password: got %v want %v", rr.Code, http.StatusUnauthorized)
	}
	if rr := login("nobody@example.com", "hunter22"); rr.Code != http.StatusUnauthorized {
		t.Errorf("unknown user: got %v want %v", rr.Code, http.StatusUnauthorized)
	}
}

func TestHandleLogout(t *testing.T) {
	provider := &MockProvider{
		ExchangeFunc: func(ctx context.Context, sessionID string) (*session.Identity, error) {
			return nil, session.ErrNotAuthenticated
		},
	}
	sessions := NewMockSessionRepo()
	users := NewMockUserRepo(&user.User{Email: "user@example.com"})
	service := session.NewService(provider, sessions, users)
	handler := NewAuthHandler(service, users)

	token, err := service.IssueLocal(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("issuing session: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	rr := httptest.NewRecorder()
	handler.HandleLogout(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if _, err := sessions.GetByToken(context.Background(), token); err == nil {
		t.Error("session should be deleted after logout")
	}
	cookie := sessionCookie(rr)
	if cookie == nil || cookie.MaxAge != -1 {
		t.Errorf("logout should clear the cookie, got %+v", cookie)
	}
}

func TestHandleMe(t *testing.T) {
	users := NewMockUserRepo(&user.User{Email: "user@example.com", Name: "Test User"})
	sessions := NewMockSessionRepo()
	provider := &MockProvider{
		ExchangeFunc: func(ctx context.Context, sessionID string) (*session.Identity, error) {
			return nil, session.ErrNotAuthenticated
		},
	}
	handler := NewAuthHandler(session.NewService(provider, sessions, users), users)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	ctx := auth.WithPrincipal(req.Context(), auth.Principal{Email: "user@example.com"})
	rr := httptest.NewRecorder()
	handler.HandleMe(rr, req.WithContext(ctx))

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	var u user.User
	if err := json.Unmarshal(rr.Body.Bytes(), &u); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if u.Name != "Test User" {
		t.Errorf("name = %q, want Test User", u.Name)
	}
}
