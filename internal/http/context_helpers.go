package httpx

import (
	"context"

	domainsession "github.com/hallyustars/storefront-go/internal/domain/session"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
type sessionKey struct{}

// SetSessionInContext returns a child context that carries the given session.
func SetSessionInContext(ctx context.Context, sess domainsession.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the session placed in the context by the session
// middleware and a boolean indicating presence.
func SessionFromContext(ctx context.Context) (domainsession.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(domainsession.Session)
	return sess, ok
}
