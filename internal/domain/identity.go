package domain

import "context"

// Identity is the authenticated caller as established by the session gate.
// The raw bearer token is carried along so the core API client can forward
// it: the core API scopes collections (e.g. GET /requests) to the caller.
type Identity struct {
	UserID int64
	Role   string
	Email  string
	Name   string
	Token  string
}

type identityKey struct{}

// WithIdentity returns a context carrying the authenticated identity.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext extracts the authenticated identity, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}
