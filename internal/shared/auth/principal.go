package auth

import "context"

// Principal identifies the authenticated owner of every repository call.
// There is no anonymous fallback: requests without a resolvable principal
// are rejected at the middleware boundary.
type Principal struct {
	Email string
	Name  string
}

type contextKey struct{}

// WithPrincipal returns a context carrying the authenticated principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// PrincipalFrom extracts the principal set by the auth middleware.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
