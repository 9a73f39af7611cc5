package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const userIDKey contextKey = "user_id"

// DefaultUserID is the caller identity assumed when no X-User-ID header is
// present. The upstream auth layer is out of scope for this service; it is
// expected to inject the header after validating the session.
const DefaultUserID = "dev-user-id"

// Identity resolves the caller's user id from the X-User-ID header and
// stores it on the request context.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			userID = DefaultUserID
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID returns the caller's user id from the request context.
func UserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok && id != "" {
		return id
	}
	return DefaultUserID
}
