package middleware

import (
	"context"
	"net/http"
	"time"
)

// TimeoutMiddleware bounds every request's context, so store calls made on
// its behalf give up after d. A non-positive d leaves requests unbounded.
func TimeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
