package authn

import (
	"context"
	"log/slog"
)

// AuthUser is the identity attached to a request after successful token
// verification. It is created fresh per request and never mutated.
type AuthUser struct {
	UserID   string
	Username string
}

func (u AuthUser) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("user_id", u.UserID),
		slog.String("username", u.Username),
	)
}

// contextKey is a value for use with context.WithValue. It's used as
// a pointer so it fits in an interface{} without allocation.
type contextKey struct {
	name string
}

func (k *contextKey) String() string {
	return "authn context value " + k.name
}

var authUserKey = &contextKey{"AuthUser"}

// WithAuthUser returns a context carrying the authenticated user
func WithAuthUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, authUserKey, user)
}

// GetAuthUser returns the authenticated user attached to the context.
// The second return value is false for anonymous requests.
func GetAuthUser(ctx context.Context) (*AuthUser, bool) {
	user, ok := ctx.Value(authUserKey).(*AuthUser)
	return user, ok && user != nil
}
