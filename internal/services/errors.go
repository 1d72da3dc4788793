// internal/services/errors.go
package services

import "fmt"

// Service errors carry the HTTP-facing taxonomy: validation (400), not
// found (404), conflict (409). Handlers map them with errors.As; anything
// else becomes a 500.

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	// Full user-facing message, e.g. "Producto no encontrado".
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

type ConflictError struct {
	Message string
	Details map[string]interface{}
}

func (e *ConflictError) Error() string { return e.Message }
