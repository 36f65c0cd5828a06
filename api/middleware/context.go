package middleware

import (
	"context"

	pkgAuth "github.com/sartorlabs/sartor-backend/pkg/auth"
)

type contextKey string

const ctxIdentity contextKey = "identity"

// IdentityFromContext returns the authenticated principal seeded by Auth.
func IdentityFromContext(ctx context.Context) (pkgAuth.Identity, bool) {
	if ctx == nil {
		return pkgAuth.Identity{}, false
	}
	identity, ok := ctx.Value(ctxIdentity).(pkgAuth.Identity)
	return identity, ok
}

// WithIdentity injects the principal into the context.
func WithIdentity(ctx context.Context, identity pkgAuth.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxIdentity, identity)
}
