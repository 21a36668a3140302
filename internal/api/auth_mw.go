package api

import (
	"context"
	"net/http"

	"FurniStore/internal/auth"
	"FurniStore/pkg/kit"
)

type ctxKey string

const userKey ctxKey = "user"

// UserFromContext returns the session user stored by RequireSession.
func UserFromContext(ctx context.Context) (auth.User, bool) {
	u, ok := ctx.Value(userKey).(auth.User)
	return u, ok
}

// RequireSession admits requests whose bearer token names the user currently
// signed in to the store. Tokens issued before a logout or restart no longer
// match and are rejected.
func (s *Server) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok, ok := kit.BearerToken(r)
		if !ok {
			kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
			return
		}

		claims, err := s.JWT.Parse(tok)
		if err != nil || claims.Subject == "" {
			kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
			return
		}

		u, ok := s.Store.User()
		if !ok || u.ID != claims.Subject {
			kit.WriteError(w, r, http.StatusUnauthorized, "session expired", nil)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must run after RequireSession.
func (s *Server) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok || !u.IsAdmin() {
			kit.WriteError(w, r, http.StatusForbidden, "forbidden", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
