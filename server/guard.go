package server

import (
	"context"
	"net/http"

	"github.com/byteforge/aegis-frontend/webstore"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySession stores the caller's webstore session
	ContextKeySession ContextKey = "session"
)

// loginRouteFor maps a session scope to the login page that restores it.
func loginRouteFor(scope webstore.Scope) string {
	if scope == webstore.ScopeAegisAdmin {
		return RouteAegisLogin
	}
	return RouteLogin
}

// RequireSession is the route guard for protected pages. The presence
// check is synchronous and happens before any backend call: an absent
// or invalid session short-circuits to the scope's login page with no
// network activity.
func (s *Server) RequireSession(scope webstore.Scope) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session, err := s.store.Load(r, scope)
			if err != nil {
				http.Redirect(w, r, loginRouteFor(scope), http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, session)
			next(w, r.WithContext(ctx))
		}
	}
}

// sessionFromContext returns the session injected by RequireSession.
func sessionFromContext(ctx context.Context) (webstore.Session, bool) {
	session, ok := ctx.Value(ContextKeySession).(webstore.Session)
	return session, ok
}
