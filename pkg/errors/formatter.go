package errors

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes a single failed validation constraint. The client only
// ever sees the generic invalid_payload message; field errors exist for
// server-side logs.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func msgForTag(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "max":
		return fmt.Sprintf("Must not exceed %s characters", fieldError.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fieldError.Param())
	default:
		return "Invalid value"
	}
}

// FormatValidationErrors flattens validator.ValidationErrors into loggable
// field/message pairs. Non-validator errors yield a single generic entry.
func FormatValidationErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	errorsList := make([]FieldError, len(validationErrors))
	for i, fieldError := range validationErrors {
		errorsList[i] = FieldError{
			Field:   strings.ToLower(fieldError.Field()),
			Message: msgForTag(fieldError),
		}
	}

	return errorsList
}
