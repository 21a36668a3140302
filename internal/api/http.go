// Package api exposes the application store over JSON HTTP.
package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"FurniStore/internal/auth"
	"FurniStore/internal/store"
	"FurniStore/pkg/kit"
)

type Server struct {
	Log   *zap.Logger
	Store *store.Store
	JWT   *auth.TokenMaker

	TokenTTL time.Duration
	// CheckoutDelay is waited out before an order is placed.
	CheckoutDelay time.Duration
}

const defaultTokenTTL = 24 * time.Hour

// userView is a user without the password hash.
type userView struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

func viewOf(u auth.User) userView {
	return userView{ID: u.ID, Email: u.Email, Name: u.Name, IsAdmin: u.IsAdmin()}
}

func (s *Server) issueToken(u auth.User) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return s.JWT.New(u, ttl)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.Log.Error(msg, zap.Error(err), zap.String("path", r.URL.Path))
	kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
}

func intParam(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, false
	}
	return id, true
}
