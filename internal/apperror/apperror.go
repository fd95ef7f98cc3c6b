// Package apperror defines the domain error taxonomy. Services return
// these errors; the HTTP layer maps them to status codes with errors.Is.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

// AppError carries a sentinel cause plus a human-readable message.
type AppError struct {
	Err     error  // sentinel cause (ErrNotFound, ErrValidation)
	Message string // human-readable error message
	Field   string // optional: request field that caused the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that no record with the given id exists.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Field:   id,
	}
}

// ValidationFailed reports that client-supplied data failed a precondition.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}
