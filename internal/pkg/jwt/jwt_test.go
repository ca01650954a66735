package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	token, err := GenerateAccessToken(42, "reception1", "receptionist", "secret", 1)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "reception1", claims.Username)
	assert.Equal(t, "receptionist", claims.Role)
	assert.Equal(t, "smarthealth", claims.Issuer)
	assert.Equal(t, "reception1", claims.Subject)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "admin", "admin", "secret", 1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	_, err := ValidateAccessToken("not-a-token", "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	claims := Claims{
		UserID:   1,
		Username: "admin",
		Role:     "admin",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwtlib.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			NotBefore: jwtlib.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			Issuer:    "smarthealth",
			Subject:   "admin",
		},
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = ValidateAccessToken(signed, "secret")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateAccessToken_WrongSigningMethod(t *testing.T) {
	// An unsigned token must be rejected even with an otherwise valid shape.
	unsigned, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, Claims{
		UserID:   1,
		Username: "admin",
		Role:     "admin",
		RegisteredClaims: jwtlib.RegisteredClaims{
			ExpiresAt: jwtlib.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ValidateAccessToken(unsigned, "secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
