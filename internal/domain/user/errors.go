package user

import (
	"github.com/tasknest/tasknest/internal/shared/errors"
)

// DomainError represents a user domain-specific error
type DomainError struct {
	*errors.AppError
}

// NewDomainError creates a new user domain validation error
func NewDomainError(message string, details ...string) *DomainError {
	return &DomainError{
		AppError: errors.NewValidationError(message, details...),
	}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.AppError.Error()
}

func (e *DomainError) Unwrap() error {
	return e.AppError
}
