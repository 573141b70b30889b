package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is the client-side view of a session token issued by the registry.
//
// The client never verifies the signature — that is the server's concern —
// but it does parse the claims to learn its own user/device identifiers and
// to know when the token expires, so background jobs can stop syncing instead
// of hammering the registry with requests that will be rejected.
type Token struct {
	// SignedString is the compact JWS representation as received from the
	// registry, sent back verbatim in the Authorization header.
	SignedString string `json:"-"`

	// UserID is the account identifier from the "sub" claim.
	UserID string `json:"-"`

	// DeviceID is the device identifier from the custom "device_id" claim.
	DeviceID string `json:"-"`

	// ExpiresAt is the token expiry from the "exp" claim; zero if absent.
	ExpiresAt time.Time `json:"-"`
}

// tokenClaims mirrors the claims the registry embeds in issued tokens.
type tokenClaims struct {
	jwt.RegisteredClaims
	DeviceID string `json:"device_id"`
}

// ParseToken builds a Token from a compact JWS string without verifying the
// signature. Returns an error if the string is not structurally a JWT or the
// subject claim is missing.
func ParseToken(signed string) (Token, error) {
	var claims tokenClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(signed, &claims); err != nil {
		return Token{}, fmt.Errorf("parse session token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Token{}, fmt.Errorf("session token has no subject claim")
	}

	t := Token{
		SignedString: signed,
		UserID:       sub,
		DeviceID:     claims.DeviceID,
	}
	if claims.ExpiresAt != nil {
		t.ExpiresAt = claims.ExpiresAt.Time
	}
	return t, nil
}

// Expired reports whether the token has an expiry in the past.
// Tokens without an "exp" claim never report expired.
func (t Token) Expired() bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(t.ExpiresAt)
}
