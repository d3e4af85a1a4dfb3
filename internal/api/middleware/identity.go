package middleware

import (
	"context"
	"net/http"
	"strconv"

	"Tally/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// Identity resolves the caller's user id into the request context.
//
// This demo host trusts an X-User-ID header set by an upstream gateway;
// deployments with real authentication swap this middleware out and keep
// the rest of the stack unchanged. Requests without the header proceed
// anonymously.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("X-User-ID")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || userID <= 0 {
			handlers.WriteError(w, http.StatusBadRequest, "InvalidUser", "X-User-ID must be a positive integer")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID returns the authenticated user id from the request context,
// or 0 for anonymous callers.
func GetUserID(r *http.Request) int64 {
	userID, _ := r.Context().Value(userIDKey).(int64)
	return userID
}

// RequireUser rejects anonymous requests. Mounted on write endpoints.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserID(r) == 0 {
			handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PositiveIDIdentity treats any positive user id as authenticated.
// Matches the Identity middleware above, which never stores other values.
type PositiveIDIdentity struct{}

func (PositiveIDIdentity) IsAuthenticated(userID int64) bool {
	return userID > 0
}
