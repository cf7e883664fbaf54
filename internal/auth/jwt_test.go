package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	tok, err := GenerateToken("super-secret", "alice@example.com")
	require.NoError(t, err)

	claims, err := ValidateToken("super-secret", tok)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestValidateWrongSecret(t *testing.T) {
	tok, err := GenerateToken("right-secret", "alice@example.com")
	require.NoError(t, err)

	_, err = ValidateToken("wrong-secret", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpired(t *testing.T) {
	claims := Claims{
		Email: "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = ValidateToken("k", tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateMalformed(t *testing.T) {
	_, err := ValidateToken("k", "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpirySetOneHourOut(t *testing.T) {
	tok, err := GenerateToken("k", "bob@example.com")
	require.NoError(t, err)

	claims, err := ValidateToken("k", tok)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, TokenTTL.Seconds(), remaining.Seconds(), 10)
}
