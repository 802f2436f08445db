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
		{"LEDGER_NOT_FOUND", http.StatusNotFound},
		{"SHARE_NOT_FOUND", http.StatusNotFound},
		{"USER_NOT_FOUND", http.StatusNotFound},
		{"NOT_LEDGER_OWNER", http.StatusForbidden},
		{"SHARE_PERMISSION_DENIED", http.StatusForbidden},
		{"SHARE_INVALID_STATUS", http.StatusUnprocessableEntity},
		{"SHARE_ALREADY_EXISTS", http.StatusConflict},
		{"CANNOT_SHARE_WITH_SELF", http.StatusBadRequest},
		{"INVALID_SHARE_PERMISSION", http.StatusBadRequest},
		{"PARENT_CATEGORY_TYPE_MISMATCH", http.StatusBadRequest},
		{"MALFORMED_PAYLOAD", http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_NOBODY_MAPPED", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("LEDGER_NOT_FOUND", "Ledger not found", "req-123")
	assert.False(t, resp.Success)
	assert.Equal(t, "LEDGER_NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{{Field: "name", Message: "required"}}
	resp := NewValidationErrorResponse("Request validation failed", "req-123", details)
	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 1)
}
