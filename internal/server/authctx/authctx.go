// Package authctx threads the authenticated admin session through request
// context. Handlers never read ambient storage; the session is rebuilt
// from the bearer token once per request by the auth middleware.
package authctx

import (
	"context"

	"esep-backend/internal/domain"
)

type contextKey string

const sessionContextKey contextKey = "adminSession"

// Session is the request-scoped view of the logged-in admin.
type Session struct {
	UserID   int64
	Username string
	Role     domain.Role
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

func FromContext(ctx context.Context) *Session {
	val, ok := ctx.Value(sessionContextKey).(Session)
	if !ok {
		return nil
	}
	return &val
}
