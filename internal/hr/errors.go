package hr

import "errors"

// Outcome kinds surfaced by repository operations. Callers classify
// results with errors.Is; the request layer maps them to responses.
var (
	// ErrNotFound: the referenced record does not exist. Absence, not failure.
	ErrNotFound = errors.New("hr: not found")

	// ErrConflict: a uniqueness constraint was violated on create.
	ErrConflict = errors.New("hr: conflict")

	// ErrValidation: a structural invariant was violated before any write.
	ErrValidation = errors.New("hr: validation failed")

	// ErrInvalidState: the record's state machine forbids the operation.
	ErrInvalidState = errors.New("hr: invalid state")
)
