package adminauth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthority(t *testing.T, now func() time.Time) *Authority {
	t.Helper()

	hash, err := HashPassword("instructor-secret", bcrypt.MinCost)
	require.NoError(t, err)

	a, err := NewAuthority(hash, "jwt-secret", time.Hour, WithClock(now))
	require.NoError(t, err)
	return a
}

func TestAuthority_LoginAndVerify(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	a := newAuthority(t, func() time.Time { return now })

	token, err := a.Login("instructor-secret")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), token.ExpiresAt)

	grant, err := a.Verify(token.Value)
	require.NoError(t, err)
	assert.True(t, grant.Valid())
	assert.Equal(t, "admin", grant.Subject())
	assert.NoError(t, Require(grant))
}

func TestAuthority_WrongPassword(t *testing.T) {
	a := newAuthority(t, time.Now)

	_, err := a.Login("guess")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestAuthority_ExpiredToken(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	a := newAuthority(t, func() time.Time { return now })

	token, err := a.Login("instructor-secret")
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = a.Verify(token.Value)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthority_ForeignSignature(t *testing.T) {
	a := newAuthority(t, time.Now)

	hash, err := HashPassword("other", bcrypt.MinCost)
	require.NoError(t, err)
	other, err := NewAuthority(hash, "another-secret", time.Hour)
	require.NoError(t, err)

	token, err := other.Login("other")
	require.NoError(t, err)

	_, err = a.Verify(token.Value)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestNewAuthority_Misconfigured(t *testing.T) {
	_, err := NewAuthority("", "secret", time.Hour)
	assert.ErrorIs(t, err, ErrMisconfigured)

	_, err = NewAuthority("not-a-bcrypt-hash", "secret", time.Hour)
	assert.ErrorIs(t, err, ErrMisconfigured)
}

func TestRequire_ZeroGrant(t *testing.T) {
	assert.ErrorIs(t, Require(Grant{}), ErrUnauthorized)
	assert.False(t, GrantFromContext(context.Background()).Valid())
}
