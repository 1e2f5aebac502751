package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey int

const userIDKey contextKey = iota

// RequireUser gates protected routes on the trusted session cookie. The
// advisory cookie is never consulted here or anywhere else on an
// authorization path.
func (a *API) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := a.sessions.Read(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}
