package auth

import "context"

// Identity is the authenticated principal attached to a request context by
// the Authn middleware. A request with no Identity is anonymous.
type Identity struct {
	Email string
	Roles []string
}

// HasRole reports whether the identity carries the given role code.
func (id Identity) HasRole(code string) bool {
	for _, r := range id.Roles {
		if r == code {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the identity carries at least one of codes.
func (id Identity) HasAnyRole(codes ...string) bool {
	for _, c := range codes {
		if id.HasRole(c) {
			return true
		}
	}
	return false
}

// Is reports whether the identity belongs to email.
func (id Identity) Is(email string) bool {
	return id.Email != "" && id.Email == email
}

// identityKey is the unexported context key for the request identity.
type identityKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromCtx extracts the request identity.
// ok is false for anonymous requests.
func IdentityFromCtx(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
