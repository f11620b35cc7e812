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

// ErrForbidden indicates the actor is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not allowed")

// Ledger commit errors. These fail a single row, never the whole job.
var (
	// ErrUnresolvedCompany indicates a row's company match carries no
	// company ID; the ledger refuses to mutate inventory for it.
	ErrUnresolvedCompany = errors.New("company match is unresolved")

	// ErrUnknownItem indicates a sale row referenced an item that does not
	// exist for the matched company. Sales never fabricate stock.
	ErrUnknownItem = errors.New("inventory item not found for sale")

	// ErrInsufficientStock indicates a sale would drive an item's quantity
	// below zero. The quantity is never clamped.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ErrJobTerminal indicates an attempt to mutate an upload job that already
// reached a terminal status.
var ErrJobTerminal = errors.New("upload job is in a terminal state")

// AppError wraps a lower-level error with an HTTP-ish status code and a
// caller-facing message.
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

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates a 404 AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
