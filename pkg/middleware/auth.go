package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Dias221467/streamify/pkg/jwt"
	"github.com/Dias221467/streamify/pkg/logger"
)

type contextKey string

const userContextKey contextKey = "user"

// AccessTokenCookie is the cookie the web client stores its access token in.
const AccessTokenCookie = "accessToken"

// AuthMiddleware rejects requests without a valid access token and stores
// the token claims in the request context.
func AuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				logger.Log.WithField("path", r.URL.Path).Debug("Missing access token")
				unauthorized(w, "Unauthorized request")
				return
			}

			claims, err := jwt.ValidateToken(token, secret)
			if err != nil {
				logger.Log.WithField("path", r.URL.Path).WithError(err).Warn("Invalid access token")
				unauthorized(w, "Invalid access token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		return c.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"statusCode": http.StatusUnauthorized,
		"message":    msg,
		"success":    false,
	})
}

// GetUserFromContext returns the authenticated user's claims, or nil.
func GetUserFromContext(ctx context.Context) *jwt.Claims {
	claims, _ := ctx.Value(userContextKey).(*jwt.Claims)
	return claims
}

// WithUser stores claims in ctx the way AuthMiddleware does.
func WithUser(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}
