package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced bike, customer, quote or
// contract does not exist.
var ErrNotFound = errors.New("record not found")

// ErrBikeUnavailable is returned by the availability compare-and-set when
// a bike is no longer AVAILABLE at pickup time.
var ErrBikeUnavailable = errors.New("bike is not available for rental")

// ValidationError reports structurally invalid input. It is raised before
// any state is mutated.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GuardError reports a lifecycle transition whose precondition failed.
// The record it refers to is left unchanged.
type GuardError struct {
	Entity string // "quote" or "contract"
	State  string // state at the time of the attempt
	Action string
	Reason string
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("%s cannot %s in state %s: %s", e.Entity, e.Action, e.State, e.Reason)
}

func NewGuardError(entity, state, action, reason string) error {
	return &GuardError{Entity: entity, State: state, Action: action, Reason: reason}
}

// IsGuard reports whether err is a GuardError.
func IsGuard(err error) bool {
	var ge *GuardError
	return errors.As(err, &ge)
}
