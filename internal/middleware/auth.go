package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cinelog/cinelog-backend/pkg/utils"
)

type contextKey string

const userContextKey contextKey = "auth.user"

// VerifyToken gatekeeps protected routes. It expects `Authorization: Bearer
// <token>`, verifies signature and expiry, and attaches the identity claim to
// the request context. Expired and forged tokens get the same response.
func VerifyToken(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "Unauthorized")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				unauthorized(w, "Invalid token")
				return
			}

			user, err := utils.VerifyToken(parts[1], secret)
			if err != nil {
				unauthorized(w, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the identity attached by VerifyToken.
func UserFromContext(ctx context.Context) (utils.TokenUser, bool) {
	user, ok := ctx.Value(userContextKey).(utils.TokenUser)
	return user, ok
}

// WithUser returns a copy of ctx carrying the identity claim. Used by
// handlers that accept session identities and by tests.
func WithUser(ctx context.Context, user utils.TokenUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
