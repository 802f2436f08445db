package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/ledger/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars!!",
		AccessTokenExpiration: expiration,
		Issuer:                "ledger-service",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	token, expiresAt, err := svc.GenerateAccessToken(42, "hyejin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)

	userID, err := claims.GetUserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "hyejin", claims.Username)
	assert.Equal(t, "ledger-service", claims.Issuer)
}

func TestJWTService_ValidateExpiredToken(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, _, err := svc.GenerateAccessToken(42, "hyejin")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ValidateWrongSecret(t *testing.T) {
	svc := newTestService(15 * time.Minute)
	other := NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-32-characters!!!",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "ledger-service",
	})

	token, _, err := other.GenerateAccessToken(42, "hyejin")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateGarbage(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	_, err := svc.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	svc := newTestService(15 * time.Minute)

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ledger-service",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:    "42",
		TokenType: "refresh",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret-key-at-least-32-chars!!"))
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(signed)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestClaims_GetUserID_NonNumeric(t *testing.T) {
	claims := &Claims{UserID: "abc"}
	_, err := claims.GetUserID()
	assert.ErrorIs(t, err, ErrInvalidClaims)
}
