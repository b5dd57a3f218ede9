package service

import (
	"errors"
	"fmt"
)

// ErrMissingProfile is returned when no profile record exists for the
// authenticated identity. The operation aborts.
var ErrMissingProfile = errors.New("no profile exists for this identity")

// ErrForbidden is returned when a profile tries to access a record it does
// not own and that is not public.
var ErrForbidden = errors.New("not allowed to access this record")

// ErrSessionClosed is returned when an answer or question is requested for
// a session that has already ended.
var ErrSessionClosed = errors.New("session is no longer active")

// GenerationError wraps a failure of the generation collaborator: the
// provider was unreachable or returned no parsable, schema-conforming JSON.
// No fallback question is substituted.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// PersistenceError wraps a read or write failure of the storage
// collaborator. Surfaced verbatim, never retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
