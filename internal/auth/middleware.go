package auth

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
)

type contextKey string

const identityContextKey contextKey = "identity"

// Middleware loads the session identity onto the request context. It never
// rejects requests itself; authorization decisions belong to the item
// service, which receives the identity as an explicit argument.
type Middleware struct {
	sessions *scs.SessionManager
}

// NewMiddleware creates a new auth Middleware.
func NewMiddleware(sm *scs.SessionManager) *Middleware {
	return &Middleware{sessions: sm}
}

// WithIdentity sets the *Identity from the session on the request context,
// if one exists. Anonymous requests pass through with no identity.
func (m *Middleware) WithIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := IdentityFromSession(r.Context(), m.sessions); id != nil {
			ctx := context.WithValue(r.Context(), identityContextKey, id)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFromContext retrieves the authenticated identity from the context,
// or nil for anonymous callers.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey).(*Identity)
	return id
}
