package auth

import (
	"errors"
	"fmt"

	"github.com/billcraft/backend/internal/domain/shared"
	"github.com/billcraft/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// IdentityClaims are the claims minted by the authentication collaborator.
// The core only verifies them; it never issues identity tokens.
type IdentityClaims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"company_id"`
	UserID    string `json:"user_id"`
}

// IdentityService verifies identity tokens presented on authenticated routes
type IdentityService struct {
	secret []byte
	issuer string
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(cfg config.IdentityConfig) *IdentityService {
	return &IdentityService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
	}
}

// Verify checks an identity token and returns its claims.
// Returns shared.ErrExpired for a valid-but-expired token and
// shared.ErrUnauthorized for every other failure.
func (s *IdentityService) Verify(token string) (*IdentityClaims, error) {
	claims := &IdentityClaims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, shared.ErrExpired
		}
		return nil, shared.ErrUnauthorized
	}
	if !parsed.Valid {
		return nil, shared.ErrUnauthorized
	}
	if claims.CompanyID == "" {
		return nil, shared.ErrUnauthorized
	}
	if _, err := uuid.Parse(claims.CompanyID); err != nil {
		return nil, shared.ErrUnauthorized
	}
	return claims, nil
}
