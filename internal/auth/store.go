package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// AdminEmail is the reserved address that makes a session an admin session.
const AdminEmail = "admin@example.com"

var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Messages shown for a registration Result.
const (
	MsgRegistered     = "Registration successful"
	MsgDuplicateEmail = "Email already exists"
)

// User is a registered account. Password holds a bcrypt hash.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// IsAdmin reports whether u signs in with the reserved admin address.
func (u User) IsAdmin() bool {
	return u.Email == AdminEmail
}

// Result is the outcome of a registration as shown to the user.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SeedUsers are installed when no user list has been persisted yet. Their
// passwords are plaintext and get hashed by NewDirectory.
func SeedUsers() []User {
	return []User{
		{ID: "admin", Email: AdminEmail, Password: "admin", Name: "Admin User"},
		{ID: "user", Email: "user@example.com", Password: "user", Name: "Regular User"},
	}
}

// preHash maps a password of any length to 44 bytes, inside bcrypt's 72-byte
// input limit.
func preHash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// passwordCost falls back to the bcrypt default for costs bcrypt rejects.
func passwordCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

func hashPassword(password string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword(preHash(password), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func isHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
