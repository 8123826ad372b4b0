package middleware

import (
	"net/http"
	"strings"

	"github.com/billcraft/backend/internal/infrastructure/auth"
	"github.com/billcraft/backend/internal/infrastructure/logger"
	"github.com/billcraft/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity context keys
const (
	IdentityCompanyIDKey = "identity_company_id"
	IdentityUserIDKey    = "identity_user_id"
	AuthHeaderKey        = "Authorization"
	BearerPrefix         = "Bearer "
)

// IdentityMiddlewareConfig holds configuration for the identity middleware
type IdentityMiddlewareConfig struct {
	// Identity verifies bearer tokens minted by the auth collaborator
	Identity *auth.IdentityService
	// AllowDevHeaders accepts X-Company-ID / X-User-ID headers when no
	// bearer token is present. Never enabled in production.
	AllowDevHeaders bool
	// Logger for middleware logging
	Logger *zap.Logger
}

// IdentityMiddleware extracts the caller's (company, user) identity from a
// bearer token and refuses requests without one. Every authenticated route
// runs behind it; tenant scoping downstream relies on the company ID set here.
func IdentityMiddleware(cfg IdentityMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		companyID, userID, ok := resolveIdentity(c, cfg, log)
		if !ok {
			return
		}

		c.Set(IdentityCompanyIDKey, companyID.String())
		c.Set(IdentityUserIDKey, userID)

		ctx := c.Request.Context()
		ctxLog := logger.FromContext(ctx)
		ctx, ctxLog = logger.WithCompanyID(ctx, ctxLog, companyID.String())
		if userID != "" {
			ctx, _ = logger.WithUserID(ctx, ctxLog, userID)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func resolveIdentity(c *gin.Context, cfg IdentityMiddlewareConfig, log *zap.Logger) (uuid.UUID, string, bool) {
	authHeader := c.GetHeader(AuthHeaderKey)
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return uuid.Nil, "", false
		}
		token := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := cfg.Identity.Verify(token)
		if err != nil {
			log.Warn("identity verification failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			abortUnauthorized(c, "Authentication required")
			return uuid.Nil, "", false
		}
		companyID, err := uuid.Parse(claims.CompanyID)
		if err != nil {
			abortUnauthorized(c, "Authentication required")
			return uuid.Nil, "", false
		}
		return companyID, claims.UserID, true
	}

	if cfg.AllowDevHeaders {
		if raw := c.GetHeader("X-Company-ID"); raw != "" {
			companyID, err := uuid.Parse(raw)
			if err != nil {
				abortUnauthorized(c, "Invalid X-Company-ID header")
				return uuid.Nil, "", false
			}
			return companyID, c.GetHeader("X-User-ID"), true
		}
	}

	abortUnauthorized(c, "Authentication required")
	return uuid.Nil, "", false
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}

// GetCompanyID retrieves the authenticated company ID from gin.Context
func GetCompanyID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(IdentityCompanyIDKey)
	if !exists {
		return uuid.Nil, false
	}
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetUserID retrieves the authenticated user ID from gin.Context
func GetUserID(c *gin.Context) string {
	if raw, exists := c.Get(IdentityUserIDKey); exists {
		if s, ok := raw.(string); ok {
			return s
		}
	}
	return ""
}
