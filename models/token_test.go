package models

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, sub, deviceID string, exp time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{"sub": sub, "device_id": deviceID}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return signed
}

func TestParseToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	signed := mintToken(t, "u-42", "d-7", exp)

	token, err := ParseToken(signed)
	require.NoError(t, err)

	assert.Equal(t, signed, token.SignedString)
	assert.Equal(t, "u-42", token.UserID)
	assert.Equal(t, "d-7", token.DeviceID)
	assert.True(t, token.ExpiresAt.Equal(exp))
	assert.False(t, token.Expired())
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-jwt")
	assert.Error(t, err)
}

func TestParseToken_MissingSubject(t *testing.T) {
	signed := mintToken(t, "", "d-7", time.Now().Add(time.Hour))
	_, err := ParseToken(signed)
	assert.Error(t, err)
}

func TestToken_Expired(t *testing.T) {
	stale, err := ParseToken(mintToken(t, "u-42", "d-7", time.Now().Add(-time.Minute)))
	require.NoError(t, err)
	assert.True(t, stale.Expired())

	eternal, err := ParseToken(mintToken(t, "u-42", "d-7", time.Time{}))
	require.NoError(t, err)
	assert.False(t, eternal.Expired())
}
