package service

import (
	"testing"
	"time"

	"github.com/stationery-next/internal/config"
	"github.com/stationery-next/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(f *serviceFixture) *AuthService {
	return NewAuthService(config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1}, 6, f.userRepo)
}

func TestRegisterAndLogin(t *testing.T) {
	f := newServiceFixture(t)
	auth := newTestAuthService(f)

	user, err := auth.Register("alice", "secret1")
	require.NoError(t, err)
	require.Equal(t, models.RoleCustomer, user.Role)
	require.NotEqual(t, "secret1", user.PasswordHash)

	_, err = auth.Register("ALICE", "secret1")
	require.ErrorIs(t, err, ErrUsernameExists)
	_, err = auth.Register("bob", "123")
	require.ErrorIs(t, err, ErrPasswordTooShort)
	_, err = auth.Register("a b", "secret1")
	require.ErrorIs(t, err, ErrUsernameInvalid)

	_, _, _, err = auth.Login("alice", "wrong-pass")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, _, err = auth.Login("nobody", "secret1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	logged, token, expiresAt, err := auth.Login("alice", "secret1")
	require.NoError(t, err)
	require.NotNil(t, logged.LastLoginAt)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := auth.ParseJWT(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, models.RoleCustomer, claims.Role)
}

func TestParseJWTRejectsForeignOrExpiredTokens(t *testing.T) {
	f := newServiceFixture(t)
	auth := newTestAuthService(f)
	user := &models.User{ID: 9, Username: "eve", Role: models.RoleAdmin}

	other := NewAuthService(config.JWTConfig{SecretKey: "other-secret", ExpireHours: 1}, 6, f.userRepo)
	token, _, err := other.GenerateJWT(user)
	require.NoError(t, err)
	_, err = auth.ParseJWT(token)
	require.ErrorIs(t, err, ErrUnauthenticated)

	auth.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := auth.GenerateJWT(user)
	require.NoError(t, err)
	auth.now = time.Now
	_, err = auth.ParseJWT(expired)
	require.ErrorIs(t, err, ErrUnauthenticated)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, JWTClaims{UserID: 9})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = auth.ParseJWT(unsigned)
	require.ErrorIs(t, err, ErrUnauthenticated)
}
