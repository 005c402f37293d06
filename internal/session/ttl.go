package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TTLFromToken derives a session lifetime from the upstream token's exp
// claim, so the stored credential never outlives the token itself. The token
// is not verified here; verification is the core API's job, this only reads
// the expiry. Tokens without a readable expiry fall back to the configured
// default, and already-expired tokens yield zero.
func TTLFromToken(token string, fallback time.Duration, now time.Time) time.Duration {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return fallback
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}

	remaining := exp.Time.Sub(now)
	if remaining <= 0 {
		return 0
	}
	if remaining < fallback {
		return remaining
	}
	return fallback
}
