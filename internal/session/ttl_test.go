package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("upstream-secret-the-gateway-never-knows"))
	require.NoError(t, err)
	return signed
}

func TestTTLFromToken(t *testing.T) {
	now := time.Now()
	fallback := 12 * time.Hour

	t.Run("caps the session at the token expiry", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})
		ttl := TTLFromToken(token, fallback, now)
		assert.InDelta(t, time.Hour, ttl, float64(time.Second))
	})

	t.Run("keeps the fallback when the token outlives it", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"exp": now.Add(48 * time.Hour).Unix()})
		assert.Equal(t, fallback, TTLFromToken(token, fallback, now))
	})

	t.Run("expired token yields zero", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()})
		assert.Equal(t, time.Duration(0), TTLFromToken(token, fallback, now))
	})

	t.Run("token without exp falls back", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{"sub": "u1"})
		assert.Equal(t, fallback, TTLFromToken(token, fallback, now))
	})

	t.Run("opaque token falls back", func(t *testing.T) {
		assert.Equal(t, fallback, TTLFromToken("not-a-jwt", fallback, now))
	})
}
