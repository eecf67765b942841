package repository

import "errors"

// Sentinel errors shared by every implementation. Implementations wrap them with context; callers match
// them with errors.Is.
var (
	// ErrNotFound means a referenced user or note id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness rule rejected the write, e.g. an email already in use.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput means a value violates a domain constraint, e.g. a rating outside 1..5.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable means the backing store cannot be reached.
	ErrUnavailable = errors.New("store unavailable")
)
