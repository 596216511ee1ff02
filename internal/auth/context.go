package auth

import "context"

type ctxKey string

const identityKey ctxKey = "sessionClaims"

type Claims struct {
	Email string
	JWTID string
}

func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, identityKey, c)
}

func FromContext(ctx context.Context) Claims {
	if v, ok := ctx.Value(identityKey).(Claims); ok {
		return v
	}
	return Claims{}
}

// Email returns the authenticated caller's email, or "" when anonymous.
func Email(ctx context.Context) string {
	return FromContext(ctx).Email
}
