package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/billcraft/backend/internal/infrastructure/auth"
	"github.com/billcraft/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIdentitySecret = "test-identity-secret"

func newIdentityRouter(t *testing.T, allowDevHeaders bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(IdentityMiddleware(IdentityMiddlewareConfig{
		Identity:        auth.NewIdentityService(config.IdentityConfig{Secret: testIdentitySecret}),
		AllowDevHeaders: allowDevHeaders,
	}))
	engine.GET("/whoami", func(c *gin.Context) {
		companyID, ok := GetCompanyID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{
			"company_id": companyID.String(),
			"user_id":    GetUserID(c),
		})
	})
	return engine
}

func mintToken(t *testing.T, secret, companyID, userID string, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := &auth.IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
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

func TestIdentityMiddleware(t *testing.T) {
	companyID := uuid.New()

	t.Run("accepts a valid bearer token", func(t *testing.T) {
		engine := newIdentityRouter(t, false)
		token := mintToken(t, testIdentitySecret, companyID.String(), "user-1", time.Hour)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), companyID.String())
		assert.Contains(t, w.Body.String(), "user-1")
	})

	t.Run("rejects a missing credential", func(t *testing.T) {
		engine := newIdentityRouter(t, false)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		engine := newIdentityRouter(t, false)
		token := mintToken(t, "other-secret", companyID.String(), "user-1", time.Hour)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a non-bearer authorization header", func(t *testing.T) {
		engine := newIdentityRouter(t, false)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Basic abc")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("dev headers work only when enabled", func(t *testing.T) {
		enabled := newIdentityRouter(t, true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("X-Company-ID", companyID.String())
		req.Header.Set("X-User-ID", "dev-user")
		enabled.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "dev-user")

		disabled := newIdentityRouter(t, false)
		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("X-Company-ID", companyID.String())
		disabled.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a malformed dev company header", func(t *testing.T) {
		engine := newIdentityRouter(t, true)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("X-Company-ID", "not-a-uuid")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
