package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/billcraft/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValidationErrors(t *testing.T) {
	SetupValidator()
	gin.SetMode(gin.TestMode)

	type createPayload struct {
		Name     string `json:"name" binding:"required,max=200"`
		Currency string `json:"currency" binding:"omitempty,len=3"`
	}

	bind := func(t *testing.T, body string) error {
		t.Helper()
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var payload createPayload
		return c.ShouldBindJSON(&payload)
	}

	t.Run("reports missing fields by JSON name", func(t *testing.T) {
		err := bind(t, `{"currency":"EUR"}`)
		require.Error(t, err)

		resp := FormatValidationErrors(err, "req-1")
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "req-1", resp.Error.RequestID)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "name", resp.Error.Details[0].Field)
		assert.Equal(t, "This field is required", resp.Error.Details[0].Message)
	})

	t.Run("reports length constraints", func(t *testing.T) {
		err := bind(t, `{"name":"Acme","currency":"EURO"}`)
		require.Error(t, err)

		resp := FormatValidationErrors(err, "")
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "currency", resp.Error.Details[0].Field)
		assert.Equal(t, "Must be exactly 3 characters", resp.Error.Details[0].Message)
	})

	t.Run("non-validator errors carry no details", func(t *testing.T) {
		resp := FormatValidationErrors(errors.New("unexpected EOF"), "req-2")
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Empty(t, resp.Error.Details)
	})
}
