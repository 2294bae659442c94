package app

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks requests rejected before any backend call.
var ErrInvalidInput = errors.New("invalid input")

// LoadError wraps any failure to fetch a resource from the backend.
// Transport failures, bad statuses and malformed bodies all collapse into
// the same user-facing message; there is no automatic retry.
type LoadError struct {
	Resource string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Resource, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) UserMessage() string {
	return "Failed to load " + e.Resource
}

// ActionError wraps a failed mutation.
type ActionError struct {
	Action string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

func (e *ActionError) UserMessage() string {
	return "Failed to " + e.Action
}

func loadErr(resource string, err error) error {
	if err == nil {
		return nil
	}
	return &LoadError{Resource: resource, Err: err}
}

func actionErr(action string, err error) error {
	if err == nil {
		return nil
	}
	return &ActionError{Action: action, Err: err}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}
