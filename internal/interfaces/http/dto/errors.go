package dto

import "net/http"

// Error code constants, format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeValidation is used when request data fails validation
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when a credential is missing or invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeExpired is used when an otherwise valid credential has expired
	ErrCodeExpired = "ERR_EXPIRED"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found, including
	// resources that exist in another tenant
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeReferentialConflict is used when deletion would orphan references
	ErrCodeReferentialConflict = "ERR_REFERENTIAL_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for the
	// document's current lifecycle state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeExpired:      http.StatusUnauthorized,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeReferentialConflict: http.StatusConflict,

	ErrCodeInvalidState: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// domainErrorCodeMapping maps domain error codes to wire codes
var domainErrorCodeMapping = map[string]string{
	"VALIDATION":           ErrCodeValidation,
	"INVALID_STATE":        ErrCodeInvalidState,
	"REFERENTIAL_CONFLICT": ErrCodeReferentialConflict,
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"UNAUTHORIZED":         ErrCodeUnauthorized,
	"EXPIRED":              ErrCodeExpired,
	"INTERNAL":             ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the wire format.
// Unknown codes pass through as-is.
func NormalizeErrorCode(code string) string {
	if wireCode, ok := domainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
