package errors

import (
	"errors"
)

// Wire codes exposed in the response envelope's "error" field.
const (
	CodeInvalidPayload   = "invalid_payload"
	CodeRateLimited      = "rate_limited"
	CodeNotFound         = "not_found"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeRequestTimeout   = "request_timeout"
	CodePayloadTooLarge  = "payload_too_large"
	CodeInternalError    = "internal_error"
)

func HTTPStatusCode(err error) int {
	if err == nil {
		return StatusInternalServerError
	}

	switch GetErrorType(err) {
	case ErrorTypeInvalidPayload:
		return StatusBadRequest
	case ErrorTypeRateLimited:
		return StatusTooManyRequests
	case ErrorTypeNotFound:
		return StatusNotFound
	case ErrorTypeConflict:
		return StatusConflict
	default:
		return StatusInternalServerError
	}
}

// WireCode maps an error to the stable machine-readable code clients branch on.
func WireCode(err error) string {
	switch GetErrorType(err) {
	case ErrorTypeInvalidPayload:
		return CodeInvalidPayload
	case ErrorTypeRateLimited:
		return CodeRateLimited
	case ErrorTypeNotFound:
		return CodeNotFound
	default:
		return CodeInternalError
	}
}

func GetHumanReadableMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	// SECURITY: avoid leaking internal error strings (DB errors, stack messages, etc.)
	return "An unexpected error occurred"
}
