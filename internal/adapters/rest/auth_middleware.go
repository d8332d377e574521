package rest

import (
	"net/http"
	"strings"

	"listing-feed-service/internal/contextkeys"
)

// AuthContextMiddleware moves the caller's credentials from headers into the
// request context so upstream adapters can forward them. It never rejects:
// public endpoints work without credentials, protected handlers check for
// themselves via RequireUser.
func AuthContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			ctx = contextkeys.ContextWithAuthToken(ctx, strings.TrimPrefix(auth, "Bearer "))
		}
		if userID := r.Header.Get("X-User-ID"); userID != "" {
			ctx = contextkeys.ContextWithUserID(ctx, userID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser rejects requests whose context carries no user identity.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contextkeys.UserIDFromContext(r.Context()) == "" {
			WriteJSONError(w, http.StatusUnauthorized, "X-User-ID header is missing")
			return
		}
		next.ServeHTTP(w, r)
	})
}
