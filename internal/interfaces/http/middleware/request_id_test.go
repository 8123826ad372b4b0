package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestIDRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDHeader))
	})
	return engine
}

func TestRequestID(t *testing.T) {
	t.Run("generates an ID when the caller sends none", func(t *testing.T) {
		engine := newRequestIDRouter()

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		echoed := w.Header().Get(RequestIDHeader)
		require.NotEmpty(t, echoed)
		_, err := uuid.Parse(echoed)
		assert.NoError(t, err)
		assert.Equal(t, echoed, w.Body.String())
	})

	t.Run("echoes a caller-provided ID", func(t *testing.T) {
		engine := newRequestIDRouter()

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "req-abc-123")
		engine.ServeHTTP(w, req)

		assert.Equal(t, "req-abc-123", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "req-abc-123", w.Body.String())
	})
}
