package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"centime/internal/domain/user"
	"centime/internal/shared/auth"
)

// Resolver maps a session token to its user. Satisfied by session.Service.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*user.User, error)
}

// Auth resolves the caller's session and stores the principal in the
// request context. Requests without a resolvable session get a 401; no
// handler behind this middleware ever runs without a principal.
func Auth(resolver Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r)
			if token == "" {
				unauthorized(w, "Authentication required")
				return
			}

			u, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				unauthorized(w, "Invalid or expired session")
				return
			}

			ctx := auth.WithPrincipal(r.Context(), auth.Principal{
				Email: u.Email,
				Name:  u.Name,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionToken extracts the session token from the request. The HttpOnly
// cookie wins (browser requests); API clients send a Bearer header.
func SessionToken(r *http.Request) string {
	if cookie, err := r.Cookie("session_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
