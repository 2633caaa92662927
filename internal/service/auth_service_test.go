package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stakehub/internal/config"
)

func newTestAuth() *AuthService {
	return NewAuthService(config.AuthConfig{Username: "admin", Password: "pw", JWTSecret: "secret"})
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	svc := newTestAuth()

	resp, err := svc.Login("admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, OwnerID("admin"), resp.OwnerID)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.OwnerID, claims.OwnerID)
	assert.Equal(t, "admin", claims.Username)
}

func TestAuthService_OwnerIDIsStable(t *testing.T) {
	assert.Equal(t, OwnerID("admin"), OwnerID("admin"))
	assert.NotEqual(t, OwnerID("admin"), OwnerID("other"))
}

func TestAuthService_BadCredentials(t *testing.T) {
	svc := newTestAuth()

	_, err := svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RejectsForeignAndExpiredTokens(t *testing.T) {
	svc := newTestAuth()
	resp, err := svc.Login("admin", "pw")
	require.NoError(t, err)

	other := NewAuthService(config.AuthConfig{Username: "admin", Password: "pw", JWTSecret: "different"})
	_, err = other.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	svc.now = func() time.Time { return time.Now().Add(TokenTTL + time.Minute) }
	_, err = svc.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
