package auth

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Directory is the registered-user list. Emails are matched exactly, case
// included. Directory is not safe for concurrent use.
type Directory struct {
	users []User
	cost  int
	dummy []byte
}

// NewDirectory loads users, hashing any password still stored in plaintext.
// migrated reports whether such a password was found. A cost outside the
// bcrypt range means the bcrypt default.
func NewDirectory(users []User, cost int) (d *Directory, migrated bool, err error) {
	cost = passwordCost(cost)

	dummy, err := bcrypt.GenerateFromPassword(preHash("furnistore-dummy-password"), cost)
	if err != nil {
		return nil, false, fmt.Errorf("dummy hash: %w", err)
	}

	d = &Directory{cost: cost, dummy: dummy, users: make([]User, 0, len(users))}
	for _, u := range users {
		if !isHash(u.Password) {
			h, err := hashPassword(u.Password, cost)
			if err != nil {
				return nil, false, fmt.Errorf("hash password of %s: %w", u.ID, err)
			}
			u.Password = h
			migrated = true
		}
		d.users = append(d.users, u)
	}
	return d, migrated, nil
}

func (d *Directory) Lookup(email string) (User, bool) {
	for _, u := range d.users {
		if u.Email == email {
			return u, true
		}
	}
	return User{}, false
}

// NewUser validates and builds a user without adding it.
func (d *Directory) NewUser(name, email, password string) (User, error) {
	if _, exists := d.Lookup(email); exists {
		return User{}, ErrDuplicateEmail
	}

	h, err := hashPassword(password, d.cost)
	if err != nil {
		return User{}, err
	}

	return User{
		ID:       "u_" + uuid.NewString(),
		Email:    email,
		Password: h,
		Name:     name,
	}, nil
}

// With returns the list as it would be after Append(u).
func (d *Directory) With(u User) []User {
	return append(d.List(), u)
}

func (d *Directory) Append(u User) {
	d.users = append(d.users, u)
}

// Verify checks credentials. An unknown email and a wrong password take the
// same path, including one bcrypt comparison, and return the same error.
func (d *Directory) Verify(email, password string) (User, error) {
	u, ok := d.Lookup(email)

	hash := d.dummy
	if ok {
		hash = []byte(u.Password)
	}

	if err := bcrypt.CompareHashAndPassword(hash, preHash(password)); err != nil || !ok {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (d *Directory) List() []User {
	return append([]User(nil), d.users...)
}

func (d *Directory) Len() int { return len(d.users) }
