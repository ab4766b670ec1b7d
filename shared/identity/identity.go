// Package identity carries the authenticated user of a request.
package identity

import "context"

type contextKey struct{}

// Identity is resolved once per request from the session cookie.
type Identity struct {
	UserID    string
	Username  string
	SessionID string
}

func (i Identity) IsAuthenticated() bool {
	return i.UserID != ""
}

func WithContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request identity. The second value is false for
// anonymous requests.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	if !ok || !id.IsAuthenticated() {
		return Identity{}, false
	}

	return id, true
}
