package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidTransition indicates that a deal or rental state transition was
// attempted from a status that does not allow it.
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrInsufficientStock indicates that a stock adjustment would violate the
// non-negative on-hand or reserved-within-on-hand inventory invariants.
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrConflict indicates a concurrent-modification conflict (serialization
// failure or lock timeout). The whole operation is safe to retry from scratch.
var ErrConflict = errors.New("concurrency conflict")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with a status code and a human-readable message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError with the given code, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
