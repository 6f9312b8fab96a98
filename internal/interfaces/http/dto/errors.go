package dto

import (
	"net/http"
	"strings"
)

// Error codes emitted by the HTTP layer itself. Domain errors carry their
// own codes and are mapped to status codes below.
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"

	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"

	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes. Codes the
// application layer produces are listed explicitly; anything unknown
// falls back by prefix, then to 500.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusBadRequest,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Authentication
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":    http.StatusUnauthorized,

	// Accounts and membership. Duplicates are client errors, not 409s.
	"EMAIL_TAKEN":      http.StatusBadRequest,
	"ALREADY_EXISTS":   http.StatusBadRequest,
	"ALREADY_MEMBER":   http.StatusBadRequest,
	"USER_NOT_FOUND":   http.StatusNotFound,
	"OWNER_IMMUTABLE":  http.StatusBadRequest,
	"NOT_A_MEMBER":     http.StatusBadRequest,
	"INVALID_PASSWORD": http.StatusBadRequest,
	"WEAK_PASSWORD":    http.StatusBadRequest,

	// Board content
	"LIST_ARCHIVED":      http.StatusBadRequest,
	"CARD_ARCHIVED":      http.StatusBadRequest,
	"INVALID_MOVE":       http.StatusBadRequest,
	"INVALID_ORDERING":   http.StatusBadRequest,
	"INVALID_STATE":      http.StatusBadRequest,
	"INVALID_ATTACHMENT": http.StatusBadRequest,
}

// errorCodeField names the request field a duplicate-value code refers
// to, so the response can carry it in details.
var errorCodeField = map[string]string{
	"EMAIL_TAKEN":    "email",
	"ALREADY_MEMBER": "userId",
}

// FieldFor returns the request field associated with an error code, or ""
// when the code is not tied to a single field.
func FieldFor(code string) string {
	return errorCodeField[code]
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unlisted INVALID_* codes are input validation failures from the domain
// layer (bad names, lengths, formats) and map to 400.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
