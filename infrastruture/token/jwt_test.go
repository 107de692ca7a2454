package token

import (
	"crypto/rand"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSecret(t *testing.T) string {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	require.NoError(t, err)
	return base64.URLEncoding.EncodeToString(bytes)
}

func TestJwtService(t *testing.T) {
	secretKey := newSecret(t)
	issuer := "qmaze"

	svc, err := NewJwtService(secretKey, issuer)
	require.NoError(t, err)

	t.Run("Generate and Decode valid token", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{"sub": "cli"}, 5*time.Minute)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "cli", claims["sub"])
		assert.Equal(t, issuer, claims["iss"])
	})

	t.Run("Decode invalid token", func(t *testing.T) {
		_, err := svc.Decode("invalidTokenString")
		assert.Error(t, err)
	})

	t.Run("Decode expired token", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{"sub": "cli"}, -time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})

	t.Run("Decode token signed with another secret", func(t *testing.T) {
		other, err := NewJwtService(newSecret(t), issuer)
		require.NoError(t, err)
		token, err := other.Generate(map[string]interface{}{}, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.Error(t, err)
	})

	t.Run("Decode token from another issuer", func(t *testing.T) {
		other, err := NewJwtService(secretKey, "someone-else")
		require.NoError(t, err)
		token, err := other.Generate(map[string]interface{}{}, time.Minute)
		require.NoError(t, err)

		_, err = svc.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Generate token with empty claims", func(t *testing.T) {
		token, err := svc.Generate(map[string]interface{}{}, 5*time.Minute)
		require.NoError(t, err)

		decodedClaims, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Empty(t, decodedClaims["sub"])
		assert.NotEmpty(t, decodedClaims["exp"])
	})

	t.Run("Empty secret", func(t *testing.T) {
		_, err := NewJwtService("", issuer)
		assert.Error(t, err)
	})
}
