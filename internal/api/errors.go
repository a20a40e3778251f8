package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/voclab/trainer-api/internal/service/training"
	"github.com/voclab/trainer-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, training.ErrScopeNotFound),
		errors.Is(err, training.ErrCardNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, training.ErrInvalidScope),
		errors.Is(err, training.ErrInvalidQuality),
		errors.Is(err, training.ErrInvalidPeriod),
		errors.Is(err, training.ErrInvalidDuration),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, training.ErrConflict),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Database unreachable
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, training.ErrScopeNotFound):
		return "Scope not found"

	case errors.Is(err, training.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, training.ErrInvalidScope):
		return "Invalid scope reference"

	case errors.Is(err, training.ErrInvalidQuality):
		return "Invalid answer quality"

	case errors.Is(err, training.ErrInvalidPeriod):
		return "Invalid stats period"

	case errors.Is(err, training.ErrInvalidDuration):
		return "Invalid session duration"

	case errors.Is(err, training.ErrConflict):
		return "Conflicting concurrent modification"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, store.ErrUnavailable):
		return "Service temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'AnswerRequest.Quality' Error:Field validation
	// for 'Quality' failed on the 'oneof' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gte":
		return "value too small"
	default:
		return "validation failed"
	}
}
