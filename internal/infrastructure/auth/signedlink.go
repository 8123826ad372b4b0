// Package auth implements the stateless capability tokens that guard the
// public invoice download endpoint. A link token is an HS256 JWT binding
// {invoice_id, company_id, expiry}; possession of a valid, unexpired token is
// the sole authorization for the download. There is no revocation list, which
// is why the TTL defaults short and is capped.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/billcraft/backend/internal/domain/shared"
	"github.com/billcraft/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// linkKind is the token kind claim; tokens of any other kind never verify.
const linkKind = "invoice_pdf"

// LinkClaims represents the claims carried by a signed download link
type LinkClaims struct {
	jwt.RegisteredClaims
	InvoiceID string `json:"invoice_id"`
	CompanyID string `json:"company_id"`
	Kind      string `json:"kind"`
}

// SignedLink is an issued capability: the token plus its resolved expiry
type SignedLink struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SignedLinkService issues and verifies signed download links
type SignedLinkService struct {
	secret     []byte
	defaultTTL time.Duration
	maxTTL     time.Duration
}

// NewSignedLinkService creates a new SignedLinkService
func NewSignedLinkService(cfg config.SignedLinkConfig) *SignedLinkService {
	return &SignedLinkService{
		secret:     []byte(cfg.Secret),
		defaultTTL: cfg.DefaultTTL,
		maxTTL:     cfg.MaxTTL,
	}
}

// DefaultTTL returns the TTL applied when the caller does not request one
func (s *SignedLinkService) DefaultTTL() time.Duration {
	return s.defaultTTL
}

// Issue creates a signed link for one invoice within one company.
// A non-positive ttl falls back to the default; ttl is clamped to the maximum.
func (s *SignedLinkService) Issue(invoiceID, companyID uuid.UUID, ttl time.Duration) (*SignedLink, error) {
	if invoiceID == uuid.Nil || companyID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION", "Invoice and company IDs are required")
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if ttl > s.maxTTL {
		ttl = s.maxTTL
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &LinkClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		InvoiceID: invoiceID.String(),
		CompanyID: companyID.String(),
		Kind:      linkKind,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign link token: %w", err)
	}

	return &SignedLink{Token: token, ExpiresAt: expiresAt}, nil
}

// Verify checks a token against the invoice ID claimed by the request path.
// It returns the verified claims, shared.ErrExpired when the signature is
// valid but past expiry, or shared.ErrUnauthorized for every other failure
// (bad signature, wrong kind, ID mismatch, malformed token). Expiry is only
// honored after the signature over it has been verified.
func (s *SignedLinkService) Verify(invoiceID uuid.UUID, token string) (*LinkClaims, error) {
	claims := &LinkClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		// jwt/v5 verifies the signature before validating claims, so an
		// expiry error here means the token was genuinely ours.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, shared.ErrExpired
		}
		return nil, shared.ErrUnauthorized
	}
	if !parsed.Valid {
		return nil, shared.ErrUnauthorized
	}
	if claims.Kind != linkKind {
		return nil, shared.ErrUnauthorized
	}
	if claims.InvoiceID != invoiceID.String() {
		return nil, shared.ErrUnauthorized
	}
	return claims, nil
}

// CompanyUUID parses the company ID claim
func (c *LinkClaims) CompanyUUID() (uuid.UUID, error) {
	return uuid.Parse(c.CompanyID)
}
