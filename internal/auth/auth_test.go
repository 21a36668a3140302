package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"FurniStore/internal/auth"
)

func newDirectory(t *testing.T) *auth.Directory {
	t.Helper()
	d, migrated, err := auth.NewDirectory(auth.SeedUsers(), bcrypt.MinCost)
	require.NoError(t, err)
	require.True(t, migrated)
	return d
}

func TestNewDirectory_HashesPlaintext(t *testing.T) {
	d := newDirectory(t)

	for _, u := range d.List() {
		assert.NotEqual(t, "admin", u.Password)
		assert.NotEqual(t, "user", u.Password)
		assert.True(t, strings.HasPrefix(u.Password, "$2"), "bcrypt hash expected, got %q", u.Password)
	}

	again, migrated, err := auth.NewDirectory(d.List(), bcrypt.MinCost)
	require.NoError(t, err)
	assert.False(t, migrated, "already hashed passwords are kept")
	assert.Equal(t, d.List(), again.List())
}

func TestVerify(t *testing.T) {
	d := newDirectory(t)

	u, err := d.Verify("user@example.com", "user")
	require.NoError(t, err)
	assert.Equal(t, "user", u.ID)
	assert.False(t, u.IsAdmin())

	a, err := d.Verify(auth.AdminEmail, "admin")
	require.NoError(t, err)
	assert.True(t, a.IsAdmin())
}

func TestVerify_DoesNotDiscloseWhichPartFailed(t *testing.T) {
	d := newDirectory(t)

	_, errUnknown := d.Verify("nonexistent@x.com", "x")
	_, errWrong := d.Verify(auth.AdminEmail, "wrongpass")
	_, errCase := d.Verify("USER@example.com", "user")

	assert.ErrorIs(t, errUnknown, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, errCase, auth.ErrInvalidCredentials, "emails match case-sensitively")
	assert.Equal(t, errUnknown, errWrong)
}

func TestNewUser(t *testing.T) {
	d := newDirectory(t)

	_, err := d.NewUser("Dup", "user@example.com", "pw")
	assert.ErrorIs(t, err, auth.ErrDuplicateEmail)

	u, err := d.NewUser("Ann", "ann@example.com", "secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u.ID, "u_"))
	assert.Equal(t, 2, d.Len(), "NewUser does not add")

	assert.Len(t, d.With(u), 3)
	assert.Equal(t, 2, d.Len(), "With does not add")

	d.Append(u)
	got, err := d.Verify("ann@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	other, err := d.NewUser("Bob", "bob@example.com", "secret")
	require.NoError(t, err)
	assert.NotEqual(t, u.ID, other.ID)
}

func TestSession(t *testing.T) {
	var s auth.Session
	assert.False(t, s.Authenticated())
	_, ok := s.User()
	assert.False(t, ok)

	s.SignIn(auth.User{ID: "admin", Email: auth.AdminEmail})
	assert.True(t, s.IsAdmin())

	s.SignIn(auth.User{ID: "user", Email: "user@example.com"})
	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "user", u.ID, "a new sign-in overwrites the session")
	assert.False(t, s.IsAdmin())

	s.SignOut()
	assert.False(t, s.Authenticated())
	assert.False(t, s.IsAdmin())
}

func TestTokenMaker(t *testing.T) {
	tm := auth.NewTokenMaker("test-secret-test-secret-test-secret")
	u := auth.User{ID: "admin", Email: auth.AdminEmail}

	tok, err := tm.New(u, time.Minute)
	require.NoError(t, err)

	c, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", c.UserID)
	assert.Equal(t, "admin", c.Subject)
	assert.Equal(t, auth.RoleAdmin, c.Role)

	expired, err := tm.New(u, -time.Minute)
	require.NoError(t, err)
	_, err = tm.Parse(expired)
	assert.Error(t, err)

	other := auth.NewTokenMaker("another-secret-another-secret-xx")
	_, err = other.Parse(tok)
	assert.Error(t, err)

	_, err = tm.Parse("not-a-token")
	assert.Error(t, err)

	assert.Equal(t, auth.RoleCustomer, auth.RoleOf(auth.User{Email: "x@example.com"}))
}

func TestLongPasswords(t *testing.T) {
	long := strings.Repeat("p", 73)
	longer := strings.Repeat("q", 80)

	d, migrated, err := auth.NewDirectory([]auth.User{
		{ID: "x", Email: "x@example.com", Password: longer, Name: "X"},
	}, bcrypt.MinCost)
	require.NoError(t, err, "a long plaintext password still loads")
	assert.True(t, migrated)

	_, err = d.Verify("x@example.com", longer)
	require.NoError(t, err)
	_, err = d.Verify("x@example.com", longer[:72])
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials, "bytes past 72 still count")

	u, err := d.NewUser("Long", "long@example.com", long)
	require.NoError(t, err)
	d.Append(u)

	_, err = d.Verify("long@example.com", long)
	require.NoError(t, err)
	_, err = d.Verify("long@example.com", long[:72])
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestNewDirectory_OutOfRangeCost(t *testing.T) {
	_, _, err := auth.NewDirectory(auth.SeedUsers(), bcrypt.MaxCost+1)
	require.NoError(t, err)
}
