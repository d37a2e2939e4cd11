// file: service/token_service_test.go

package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestTokenService() *TokenService {
	return NewTokenService("test-secret", 30*time.Minute, 14*24*time.Hour)
}

func TestTokenService_AccessTokenRoundTrip(t *testing.T) {
	tokens := newTestTokenService()

	raw, err := tokens.CreateAccessToken(42, "zed", time.Now())
	assert.NoError(t, err)
	assert.NotEmpty(t, raw)

	parsed, err := tokens.ParseToken(raw)
	assert.NoError(t, err)
	assert.Equal(t, 42, parsed.Claims.UserID)
	assert.Equal(t, "zed", parsed.Claims.Nickname)
	assert.Equal(t, "USER", parsed.Claims.Role)
	assert.True(t, parsed.Valid())
}

func TestTokenService_RefreshTokenCarriesNoUserClaims(t *testing.T) {
	tokens := newTestTokenService()

	raw, err := tokens.CreateRefreshToken(time.Now())
	assert.NoError(t, err)

	parsed, err := tokens.ParseToken(raw)
	assert.NoError(t, err)
	assert.Zero(t, parsed.Claims.UserID)
	assert.Empty(t, parsed.Claims.Nickname)
	assert.Empty(t, parsed.Claims.Role)
	assert.Equal(t, "test-secret", parsed.Claims.Subject)
	assert.True(t, parsed.Valid())
}

func TestTokenService_ExpiredTokenStillParses(t *testing.T) {
	tokens := newTestTokenService()

	// Issued far enough in the past that the expiry is behind us.
	raw, err := tokens.CreateAccessToken(7, "old", time.Now().Add(-48*time.Hour))
	assert.NoError(t, err)

	parsed, err := tokens.ParseToken(raw)
	assert.NoError(t, err, "an expired token must still parse so its subject stays readable")
	assert.Equal(t, 7, parsed.Claims.UserID)
	assert.False(t, parsed.Valid())
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	// Zero access expiry puts the expiry exactly at issuance time; a token
	// at its expiry instant must already be invalid.
	tokens := NewTokenService("test-secret", 0, 0)

	raw, err := tokens.CreateAccessToken(1, "edge", time.Now())
	assert.NoError(t, err)

	parsed, err := tokens.ParseToken(raw)
	assert.NoError(t, err)
	assert.False(t, parsed.Valid())
}

func TestTokenService_WrongSecret(t *testing.T) {
	tokens := newTestTokenService()
	other := NewTokenService("another-secret", 30*time.Minute, 14*24*time.Hour)

	raw, err := tokens.CreateAccessToken(42, "zed", time.Now())
	assert.NoError(t, err)

	_, err = other.ParseToken(raw)
	assert.Error(t, err)
}

func TestTokenService_Malformed(t *testing.T) {
	tokens := newTestTokenService()

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tokens.ParseToken(raw)
		assert.Error(t, err, "input %q should not parse", raw)
	}
}
