package container

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the container wraps exactly one of
// these, so callers can branch with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrConflict      = errors.New("conflict error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrLoad          = errors.New("load error")
)

// Causes that need to be told apart from their kind.
var (
	ErrEagerFile          = errors.New("file dependency is loaded at startup and cannot be resolved on demand")
	ErrIneligible         = errors.New("dependency is not eligible for the active profile")
	ErrCircular           = errors.New("single instance is already being constructed (circular dependency or concurrent first resolution)")
	ErrAlreadyInitialized = errors.New("container already initialized")
	ErrNoDocument         = errors.New("no page document configured")
)

// DependencyError describes a failed registration, resolution or load.
type DependencyError struct {
	Kind  error  // one of the Err* kinds above
	Op    string // registerObject, resolveFile, init, ...
	Name  string // dependency name, may be empty
	Cause error
}

func (e *DependencyError) Error() string {
	msg := fmt.Sprintf("container: %s", e.Op)
	if e.Name != "" {
		msg += fmt.Sprintf(" [%s]", e.Name)
	}
	msg += ": " + e.Kind.Error()
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DependencyError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newError(kind error, op, name string, cause error) *DependencyError {
	return &DependencyError{Kind: kind, Op: op, Name: name, Cause: cause}
}

func validationf(op, name, format string, args ...any) *DependencyError {
	return newError(ErrValidation, op, name, fmt.Errorf(format, args...))
}
