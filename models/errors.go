package models

import (
	"errors"
	"fmt"
)

// ErrInternal marks an unexpected computation failure. It is logged where
// it occurs and surfaced generically at the boundary.
var ErrInternal = errors.New("internal error")

// ValidationError reports a missing, malformed, or out-of-range query
// parameter. It is raised before any computation begins.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameter %q: %s", e.Param, e.Reason)
}

// NewValidationError builds a ValidationError for the given parameter.
func NewValidationError(param, reason string) *ValidationError {
	return &ValidationError{Param: param, Reason: reason}
}

// NotFoundError reports a referenced entity that does not exist in the
// dataset. Distinct from an empty result, which is not an error.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFoundError builds a NotFoundError for the given resource and id.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
