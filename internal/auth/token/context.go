package token

import "context"

type contextKey string

// claimsKey stores the verified claims of the current request.
const claimsKey contextKey = "auth_claims"

// WithClaims attaches verified claims to the request context. The
// identity lives only for the duration of one request and is never
// persisted.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext extracts the verified claims attached by the auth
// middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}
