package services

import "errors"

// Common service-level errors
var (
	// Lookup errors. Missing entities and entities owned by someone else
	// are indistinguishable to the caller.
	ErrNoteNotFound  = errors.New("note not found")
	ErrBlockNotFound = errors.New("block not found")

	// Validation errors
	ErrInvalidBlockType = errors.New("invalid block type")
	ErrInvalidPosition  = errors.New("block position must not be negative")

	// ErrConflict is reserved for concurrent edits; no operation raises it yet.
	ErrConflict = errors.New("conflict")
)
