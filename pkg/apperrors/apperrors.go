// Package apperrors defines the error taxonomy shared by all services.
// Validation and not-found errors propagate verbatim to the transport layer;
// anything else is wrapped as an internal error with the cause preserved.
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError signals a rejected precondition. Always raised before any
// write takes place.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidation builds a ValidationError from a format string.
func NewValidation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError signals a missing record.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

// NewNotFound builds a NotFoundError for an entity/id pair.
func NewNotFound(entity string, id uint) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// InternalError wraps an unexpected failure. The original message is kept
// for diagnostics; callers see a generic classification.
type InternalError struct {
	Op    string
	Cause error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *InternalError) Unwrap() error { return e.Cause }

// Internal wraps err as an InternalError unless it is already part of the
// taxonomy, in which case it passes through untouched.
func Internal(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsValidation(err) || IsNotFound(err) {
		return err
	}
	return &InternalError{Op: op, Cause: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
