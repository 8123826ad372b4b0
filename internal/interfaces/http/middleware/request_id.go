package middleware

import (
	"github.com/billcraft/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the canonical request ID header
const RequestIDHeader = "X-Request-ID"

// RequestID assigns each request an ID, echoing a caller-provided one.
// The ID lands on the response header, the gin context and the request
// context so log lines correlate across layers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDHeader, requestID)
		c.Header(RequestIDHeader, requestID)

		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithRequestID(ctx, log, requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
