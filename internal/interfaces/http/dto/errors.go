package dto

import "net/http"

// Generic error codes used by handlers and middleware
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeTooLarge     = "PAYLOAD_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes. Codes
// follow the five kinds raised by the services: not-found, authorization,
// invalid-state, validation, malformed-payload.
var ErrorCodeHTTPStatus = map[string]int{
	// Generic
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeTooLarge:     http.StatusRequestEntityTooLarge,

	// Not found
	"LEDGER_NOT_FOUND":          http.StatusNotFound,
	"CATEGORY_NOT_FOUND":        http.StatusNotFound,
	"PARENT_CATEGORY_NOT_FOUND": http.StatusNotFound,
	"SHARE_NOT_FOUND":           http.StatusNotFound,
	"TRANSACTION_NOT_FOUND":     http.StatusNotFound,
	"USER_NOT_FOUND":            http.StatusNotFound,

	// Authorization
	"NOT_LEDGER_OWNER":        http.StatusForbidden,
	"SHARE_PERMISSION_DENIED": http.StatusForbidden,

	// Invalid state
	"SHARE_INVALID_STATUS": http.StatusUnprocessableEntity,
	"INVALID_STATE":        http.StatusUnprocessableEntity,

	// Validation
	"LEDGER_NAME_EMPTY":             http.StatusBadRequest,
	"LEDGER_NAME_TOO_LONG":          http.StatusBadRequest,
	"LEDGER_DESCRIPTION_TOO_LONG":   http.StatusBadRequest,
	"LEDGER_CURRENCY_TOO_LONG":      http.StatusBadRequest,
	"CATEGORY_NAME_EMPTY":           http.StatusBadRequest,
	"CATEGORY_NAME_TOO_LONG":        http.StatusBadRequest,
	"INVALID_CATEGORY_TYPE":         http.StatusBadRequest,
	"PARENT_CATEGORY_TYPE_MISMATCH": http.StatusBadRequest,
	"CATEGORY_LEDGER_MISMATCH":      http.StatusBadRequest,
	"CANNOT_SHARE_WITH_SELF":        http.StatusBadRequest,
	"INVALID_SHARE_PERMISSION":      http.StatusBadRequest,
	"INVALID_INPUT":                 http.StatusBadRequest,
	"SHARE_ALREADY_EXISTS":          http.StatusConflict,
	"ALREADY_EXISTS":                http.StatusConflict,
	"CONCURRENCY_CONFLICT":          http.StatusConflict,

	// Malformed inbound payload
	"MALFORMED_PAYLOAD": http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code, defaulting to
// 500 for codes the map does not know
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
