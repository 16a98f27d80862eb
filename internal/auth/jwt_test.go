// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/user-microservice/internal/config"
	"github.com/angelamos/user-microservice/internal/core"
)

func testTokenManager(t *testing.T, expire time.Duration) *TokenManager {
	t.Helper()

	m, err := NewTokenManager(config.JWTConfig{
		Secret:      "test-secret-at-least-32-bytes-long!!",
		TokenExpire: expire,
		Issuer:      "user-microservice",
	})
	require.NoError(t, err)
	return m
}

func TestIssueAndVerifyToken(t *testing.T) {
	t.Parallel()

	m := testTokenManager(t, time.Hour)

	token, err := m.IssueToken("user-123", "a@x.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestVerifyTokenExpired(t *testing.T) {
	t.Parallel()

	m := testTokenManager(t, -time.Minute)

	token, err := m.IssueToken("user-123", "a@x.com", "user")
	require.NoError(t, err)

	_, err = m.VerifyToken(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	t.Parallel()

	m := testTokenManager(t, time.Hour)

	other, err := NewTokenManager(config.JWTConfig{
		Secret:      "a-completely-different-signing-key!!",
		TokenExpire: time.Hour,
		Issuer:      "user-microservice",
	})
	require.NoError(t, err)

	token, err := other.IssueToken("user-123", "a@x.com", "user")
	require.NoError(t, err)

	_, err = m.VerifyToken(context.Background(), token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyTokenMalformed(t *testing.T) {
	t.Parallel()

	m := testTokenManager(t, time.Hour)

	for _, tokenString := range []string{
		"",
		"garbage",
		"not.a.jwt",
		"a.b.c.d",
	} {
		_, err := m.VerifyToken(context.Background(), tokenString)
		require.Error(t, err, "token %q", tokenString)
		assert.ErrorIs(t, err, core.ErrTokenInvalid)
	}
}

// Expired and tampered tokens must be indistinguishable to the caller:
// both collapse to the same invalid-token failure.
func TestVerifyTokenFailuresCollapse(t *testing.T) {
	t.Parallel()

	m := testTokenManager(t, -time.Minute)
	expired, err := m.IssueToken("user-123", "a@x.com", "user")
	require.NoError(t, err)

	tampered := expired[:len(expired)-4] + "AAAA"

	_, expiredErr := m.VerifyToken(context.Background(), expired)
	_, tamperedErr := m.VerifyToken(context.Background(), tampered)

	assert.ErrorIs(t, expiredErr, core.ErrTokenInvalid)
	assert.ErrorIs(t, tamperedErr, core.ErrTokenInvalid)
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager(config.JWTConfig{
		TokenExpire: time.Hour,
	})
	assert.Error(t, err)
}
