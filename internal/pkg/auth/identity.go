package auth

import "context"

// Identity is the verified caller of a request.
type Identity struct {
	UID   string
	Email string
	Admin bool
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the caller, or nil for anonymous requests.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(ctxKey{}).(*Identity)
	return id
}

// IsAnonymous reports whether id carries no user.
func (id *Identity) IsAnonymous() bool {
	return id == nil || id.UID == ""
}

func (id *Identity) IsAdmin() bool {
	return id != nil && id.Admin
}
