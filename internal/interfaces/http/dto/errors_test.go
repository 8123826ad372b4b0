package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeInvalidJSON, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeExpired, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeReferentialConflict, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_NEW", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	t.Run("maps domain codes to wire codes", func(t *testing.T) {
		assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
		assert.Equal(t, ErrCodeValidation, NormalizeErrorCode("VALIDATION"))
		assert.Equal(t, ErrCodeInvalidState, NormalizeErrorCode("INVALID_STATE"))
		assert.Equal(t, ErrCodeReferentialConflict, NormalizeErrorCode("REFERENTIAL_CONFLICT"))
		assert.Equal(t, ErrCodeUnauthorized, NormalizeErrorCode("UNAUTHORIZED"))
		assert.Equal(t, ErrCodeExpired, NormalizeErrorCode("EXPIRED"))
	})

	t.Run("unknown codes pass through and map to 500", func(t *testing.T) {
		assert.Equal(t, "WHATEVER", NormalizeErrorCode("WHATEVER"))
		assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(NormalizeErrorCode("WHATEVER")))
	})
}

func TestResponseEnvelopes(t *testing.T) {
	t.Run("success envelope", func(t *testing.T) {
		resp := NewSuccessResponse(map[string]string{"k": "v"})
		assert.True(t, resp.Success)
		assert.Nil(t, resp.Error)
		assert.NotNil(t, resp.Data)
	})

	t.Run("error envelope", func(t *testing.T) {
		resp := NewErrorResponse(ErrCodeNotFound, "Invoice not found")
		assert.False(t, resp.Success)
		assert.Nil(t, resp.Data)
		assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
		assert.Equal(t, "Invoice not found", resp.Error.Message)
	})

	t.Run("error envelope with request ID", func(t *testing.T) {
		resp := NewErrorResponseWithRequestID(ErrCodeInternal, "boom", "req-1")
		assert.Equal(t, "req-1", resp.Error.RequestID)
	})
}
