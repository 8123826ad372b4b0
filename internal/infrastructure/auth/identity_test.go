package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/billcraft/backend/internal/domain/shared"
	"github.com/billcraft/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const identitySecret = "test-identity-secret"

func mintIdentityToken(t *testing.T, secret, issuer, companyID, userID string, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := &IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		},
		CompanyID: companyID,
		UserID:    userID,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestIdentityVerify(t *testing.T) {
	svc := NewIdentityService(config.IdentityConfig{Secret: identitySecret})
	companyID := uuid.New().String()

	t.Run("accepts a valid token", func(t *testing.T) {
		token := mintIdentityToken(t, identitySecret, "", companyID, "user-1", time.Hour)
		claims, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, companyID, claims.CompanyID)
		assert.Equal(t, "user-1", claims.UserID)
	})

	t.Run("expired token maps to EXPIRED", func(t *testing.T) {
		token := mintIdentityToken(t, identitySecret, "", companyID, "user-1", -time.Hour)
		_, err := svc.Verify(token)
		assert.True(t, errors.Is(err, shared.ErrExpired))
	})

	t.Run("wrong secret maps to UNAUTHORIZED", func(t *testing.T) {
		token := mintIdentityToken(t, "other-secret", "", companyID, "user-1", time.Hour)
		_, err := svc.Verify(token)
		assert.True(t, errors.Is(err, shared.ErrUnauthorized))
	})

	t.Run("missing company claim is rejected", func(t *testing.T) {
		token := mintIdentityToken(t, identitySecret, "", "", "user-1", time.Hour)
		_, err := svc.Verify(token)
		assert.True(t, errors.Is(err, shared.ErrUnauthorized))
	})

	t.Run("non-uuid company claim is rejected", func(t *testing.T) {
		token := mintIdentityToken(t, identitySecret, "", "company-1", "user-1", time.Hour)
		_, err := svc.Verify(token)
		assert.True(t, errors.Is(err, shared.ErrUnauthorized))
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := svc.Verify("nope")
		assert.True(t, errors.Is(err, shared.ErrUnauthorized))
	})
}

func TestIdentityVerifyIssuer(t *testing.T) {
	svc := NewIdentityService(config.IdentityConfig{Secret: identitySecret, Issuer: "accounts.example"})
	companyID := uuid.New().String()

	t.Run("accepts the configured issuer", func(t *testing.T) {
		token := mintIdentityToken(t, identitySecret, "accounts.example", companyID, "user-1", time.Hour)
		_, err := svc.Verify(token)
		require.NoError(t, err)
	})

	t.Run("rejects another issuer", func(t *testing.T) {
		token := mintIdentityToken(t, identitySecret, "evil.example", companyID, "user-1", time.Hour)
		_, err := svc.Verify(token)
		assert.True(t, errors.Is(err, shared.ErrUnauthorized))
	})
}
