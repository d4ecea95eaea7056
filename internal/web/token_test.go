package web

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, exp, err := issueToken(7, "admin", "secret")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(tokenTTL), exp, time.Minute)

	claims, err := parseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
}

func TestTokenWrongSecret(t *testing.T) {
	token, _, err := issueToken(1, "admin", "secret")
	require.NoError(t, err)

	_, err = parseToken(token, "other")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	claims := Claims{
		UserID:   1,
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = parseToken(token, "secret")
	assert.Error(t, err)
}

func TestTokenRejectsOtherSigningMethod(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID:   1,
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = parseToken(token, "secret")
	assert.Error(t, err)
}
