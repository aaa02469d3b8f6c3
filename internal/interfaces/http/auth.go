package http

import (
	"errors"
	"net/http"
	"time"

	"centime/internal/domain/session"
	"centime/internal/domain/user"
	"centime/internal/shared/auth"
	"centime/internal/shared/middleware"
)

// AuthHandler owns the session lifecycle endpoints.
type AuthHandler struct {
	sessions *session.Service
	users    user.Repository
}

func NewAuthHandler(sessions *session.Service, users user.Repository) *AuthHandler {
	return &AuthHandler{sessions: sessions, users: users}
}

func setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// HandleSession exchanges an external session id for a local session
// cookie. The id comes from the X-Session-ID header or ?session_id=.
func (h *AuthHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		sessionID = r.URL.Query().Get("session_id")
	}
	if sessionID == "" {
		respondError(w, http.StatusUnprocessableEntity, "session_id is required")
		return
	}

	u, token, err := h.sessions.ExchangeAndIssue(r.Context(), sessionID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	setSessionCookie(w, token, int(session.TTL.Seconds()))
	respondJSON(w, http.StatusOK, u)
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// HandleRegister creates a local account with a bcrypt password hash and
// issues a session for it.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	u, err := h.users.Create(r.Context(), user.CreateParams{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &hash,
	})
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	token, err := h.sessions.IssueLocal(r.Context(), u.Email)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	setSessionCookie(w, token, int(session.TTL.Seconds()))
	respondJSON(w, http.StatusOK, u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondDomainError(w, r, err)
		return
	}
	if u.PasswordHash == nil || auth.VerifyPassword(*u.PasswordHash, req.Password) != nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.sessions.IssueLocal(r.Context(), u.Email)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	setSessionCookie(w, token, int(session.TTL.Seconds()))
	respondJSON(w, http.StatusOK, u)
}

// HandleMe returns the authenticated user. Runs behind the auth
// middleware.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	u, err := h.users.GetByEmail(r.Context(), p.Email)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// HandleLogout deletes the session and clears the cookie. Safe to call
// without a valid session.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		if err := h.sessions.Logout(r.Context(), token); err != nil {
			respondDomainError(w, r, err)
			return
		}
	}
	setSessionCookie(w, "", -1)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// HandleDebug reports what the server sees for the caller's token.
func (h *AuthHandler) HandleDebug(w http.ResponseWriter, r *http.Request) {
	token := middleware.SessionToken(r)
	out := map[string]any{
		"has_token": token != "",
		"now":       time.Now().UTC().Format(time.RFC3339),
	}
	if token != "" {
		if sess, err := h.sessions.Inspect(r.Context(), token); err == nil {
			out["session_found"] = true
			out["email"] = sess.Email
			out["expires_at"] = sess.ExpiresAt.Format(time.RFC3339)
			out["expired"] = sess.Expired(time.Now().UTC())
		} else {
			out["session_found"] = false
		}
	}
	respondJSON(w, http.StatusOK, out)
}
