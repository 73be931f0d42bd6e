package domain

import (
	"errors"
)

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrConstraint = errors.New("constraint violation")
	ErrTransient  = errors.New("transient storage error")
	ErrValidation = errors.New("validation failed")
)

// Domain error types. The store is a thin pass-through of the storage
// engine's failure modes, wrapped in these domain-named errors.
type (
	// NotFoundError indicates a lookup yielded no row where the caller
	// expected one (e.g. resolving a document before saving suggestions).
	NotFoundError struct {
		Message string
	}

	// ConflictError indicates a unique-constraint violation, such as a
	// duplicate email. ResourceType/ResourceID describe the existing row
	// when it could be identified.
	ConflictError struct {
		Message      string
		ResourceType string
		ResourceID   string
	}

	// ConstraintError indicates a foreign-key violation, such as deleting
	// a parent row before its children.
	ConstraintError struct {
		Message string
	}

	// TransientError wraps connection-level failures that are safe to
	// retry. Retry policy belongs to the caller, not this layer.
	TransientError struct {
		Message string
		Err     error
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ConflictError) Error() string   { return e.Message }
func (e *ConstraintError) Error() string { return e.Message }
func (e *TransientError) Error() string  { return e.Message }

// Is implementations let errors.Is() match the typed errors against their
// sentinels without unwrapping manually.
func (e *NotFoundError) Is(target error) bool   { return target == ErrNotFound }
func (e *ConflictError) Is(target error) bool   { return target == ErrConflict }
func (e *ConstraintError) Is(target error) bool { return target == ErrConstraint }
func (e *TransientError) Is(target error) bool  { return target == ErrTransient }

// Unwrap exposes the underlying transport error for callers that need the
// driver-level detail.
func (e *TransientError) Unwrap() error { return e.Err }
