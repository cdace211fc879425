package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	sessionContextKey contextKey = "session_id"

	// SessionHeader carries the client's session id; it is echoed on every response.
	SessionHeader = "X-Session-ID"
)

const maxSessionIDLen = 128

// SessionMiddleware attaches a session id to the request context so activity
// records can be grouped by session. A missing or oversized header gets a fresh id.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(SessionHeader)
		if id == "" || len(id) > maxSessionIDLen {
			id = uuid.NewString()
		}
		w.Header().Set(SessionHeader, id)
		next.ServeHTTP(w, r.WithContext(WithSessionID(r.Context(), id)))
	})
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionContextKey, id)
}

// SessionIDFromContext returns the request's session id, or "".
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionContextKey).(string)
	return id
}
