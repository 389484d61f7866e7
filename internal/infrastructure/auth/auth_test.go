//go:build unit
// +build unit

package auth

import (
	"testing"
	"time"

	"github.com/Wetooa/mentara-sub026/internal/domain/users"
	"github.com/Wetooa/mentara-sub026/internal/pkg/apperr"
	"github.com/Wetooa/mentara-sub026/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setupIssuer(t *testing.T) users.TokenIssuer {
	t.Helper()
	settings := config.DefaultAuthSettings()
	settings.JWTSecret = testSecret
	issuer, err := NewJWTIssuer(&settings)
	require.NoError(t, err)
	return issuer
}

func TestJWTIssuer(t *testing.T) {
	issuer := setupIssuer(t)
	user := &users.User{ID: uuid.NewString(), Email: "ana@example.com", Role: users.RoleTherapist}

	t.Run("RoundTrip", func(t *testing.T) {
		now := time.Now()
		token, expiresAt, err := issuer.IssueAccessToken(user, now)
		require.NoError(t, err)
		assert.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

		claims, err := issuer.ParseAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Email, claims.Email)
		assert.Equal(t, users.RoleTherapist, claims.Role)
	})

	t.Run("Expired", func(t *testing.T) {
		token, _, err := issuer.IssueAccessToken(user, time.Now().Add(-2*time.Hour))
		require.NoError(t, err)

		_, err = issuer.ParseAccessToken(token)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	})

	t.Run("WrongSecret", func(t *testing.T) {
		other := config.DefaultAuthSettings()
		other.JWTSecret = "ffffffffffffffffffffffffffffffff"
		otherIssuer, err := NewJWTIssuer(&other)
		require.NoError(t, err)

		token, _, err := otherIssuer.IssueAccessToken(user, time.Now())
		require.NoError(t, err)

		_, err = issuer.ParseAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := issuer.ParseAccessToken("not-a-token")
		assert.Error(t, err)
	})
}

func TestNewJWTIssuer_ShortSecret(t *testing.T) {
	settings := config.DefaultAuthSettings()
	settings.JWTSecret = "short"
	_, err := NewJWTIssuer(&settings)
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	hasher, err := NewBcryptHasher(4)
	require.NoError(t, err)

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, hasher.Compare(hash, "secret123"))
	assert.Error(t, hasher.Compare(hash, "secret124"))

	_, err = NewBcryptHasher(99)
	assert.Error(t, err)
}

func TestOpaqueTokens(t *testing.T) {
	token, hash, err := NewOpaqueToken()
	require.NoError(t, err)
	assert.Len(t, token, 64)
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, HashToken(token))

	other, _, err := NewOpaqueToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestGeneratePassword(t *testing.T) {
	password, err := GeneratePassword(12)
	require.NoError(t, err)
	assert.Len(t, password, 12)
	assert.NoError(t, users.ValidatePasswordStrength(password))
}
