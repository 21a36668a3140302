package api

import (
	"errors"
	"net/http"
	"strings"

	"FurniStore/internal/auth"
	"FurniStore/pkg/kit"
)

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResp struct {
	auth.Result
	AccessToken string    `json:"access_token,omitempty"`
	User        *userView `json:"user,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "email/password required", nil)
		return
	}

	res, err := s.Store.Register(r.Context(), req.Name, req.Email, req.Password)
	if errors.Is(err, auth.ErrDuplicateEmail) {
		kit.WriteJSON(w, http.StatusConflict, registerResp{Result: res})
		return
	}
	if err != nil {
		s.serverError(w, r, "register failed", err)
		return
	}

	u, ok := s.Store.User()
	if !ok {
		s.serverError(w, r, "register failed", errors.New("no session after registration"))
		return
	}
	tok, err := s.issueToken(u)
	if err != nil {
		s.serverError(w, r, "token issue", err)
		return
	}

	view := viewOf(u)
	kit.WriteJSON(w, http.StatusCreated, registerResp{Result: res, AccessToken: tok, User: &view})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	AccessToken string   `json:"access_token"`
	User        userView `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := kit.DecodeJSON(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "email/password required", nil)
		return
	}

	if err := s.Store.Login(req.Email, req.Password); err != nil {
		kit.WriteError(w, r, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	u, ok := s.Store.User()
	if !ok {
		s.serverError(w, r, "login failed", errors.New("no session after login"))
		return
	}
	tok, err := s.issueToken(u)
	if err != nil {
		s.serverError(w, r, "token issue", err)
		return
	}

	kit.WriteJSON(w, http.StatusOK, loginResp{AccessToken: tok, User: viewOf(u)})
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	s.Store.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	u, _ := UserFromContext(r.Context())
	kit.WriteJSON(w, http.StatusOK, viewOf(u))
}
