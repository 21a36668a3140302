package auth

// Session is the identity of the running store: anonymous, or signed in as
// one user. It is never persisted.
type Session struct {
	user  *User
	admin bool
}

// SignIn replaces whatever session was active.
func (s *Session) SignIn(u User) {
	s.user = &u
	s.admin = u.IsAdmin()
}

func (s *Session) SignOut() {
	s.user = nil
	s.admin = false
}

func (s *Session) User() (User, bool) {
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Session) Authenticated() bool { return s.user != nil }

func (s *Session) IsAdmin() bool { return s.admin }
