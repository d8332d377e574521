package contextkeys

import "context"

type authTokenKeyType struct{}
type userIDKeyType struct{}

var (
	authTokenKey = authTokenKeyType{}
	userIDKey    = userIDKeyType{}
)

// ContextWithAuthToken puts the caller's bearer token into the context so
// upstream adapters can forward it verbatim.
func ContextWithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey, token)
}

// AuthTokenFromContext extracts the bearer token, or "" for public calls.
func AuthTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(authTokenKey).(string); ok {
		return token
	}
	return ""
}

// ContextWithUserID puts the authenticated user's id into the context.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated user's id, or "".
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}
