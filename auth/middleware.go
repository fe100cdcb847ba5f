package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	// UserIDKey holds the authenticated user identifier in the request context.
	UserIDKey contextKey = "user_id"
	// RolesKey holds the authenticated user's roles in the request context.
	RolesKey contextKey = "roles"
)

// Middleware validates the Authorization header on protected routes and
// injects the resolved identity into the request context. Handlers below
// this point only ever see an opaque user ID, never the token.
func Middleware(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "authorization token is missing")
				return
			}

			tokenStr := strings.TrimPrefix(header, "Bearer ")
			claims, err := issuer.Validate(tokenStr)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, RolesKey, claims.Roles)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user ID, if any.
func UserFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + message + `"}`))
}
