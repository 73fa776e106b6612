package application

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the fields the server signs into session tokens.
type TokenClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// ParseTokenClaims decodes the claims without verifying the signature. The
// client has no signing key; the result is informational only.
func ParseTokenClaims(token string) (TokenClaims, error) {
	var claims TokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return TokenClaims{}, fmt.Errorf("parse session token claims: %w", err)
	}
	return claims, nil
}

// Expiry is zero when the token carries no exp claim.
func (c TokenClaims) Expiry() time.Time {
	if c.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.ExpiresAt.Time
}

func (c TokenClaims) Expired(now time.Time) bool {
	expiresAt := c.Expiry()
	return !expiresAt.IsZero() && !now.Before(expiresAt)
}
