// Package security provides client-side bearer-token helpers. The panel never
// verifies token signatures (that is the identity service's job); it only
// inspects claims to schedule around expiry and to format the Authorization
// header.
package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token is malformed.
var ErrInvalidToken = errors.New("invalid token")

// Expiry returns the exp claim of the given JWT without verifying its
// signature. Returns ErrInvalidToken for malformed tokens and a zero time
// when the token carries no expiry.
func Expiry(token string) (time.Time, error) {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

// Expired reports whether the token's exp claim is at or before now.
// Malformed tokens are treated as expired; tokens without an expiry are not.
func Expired(token string, now time.Time) bool {
	exp, err := Expiry(token)
	if err != nil {
		return true
	}
	if exp.IsZero() {
		return false
	}
	return !exp.After(now)
}

// AuthorizationHeader formats the bearer header value for collaborator calls.
func AuthorizationHeader(token string) string {
	return "Bearer " + token
}
