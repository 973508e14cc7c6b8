package errors

import "errors"

var (
	ErrNotFound = errors.New("user not found")

	ErrInvalidID = errors.New("invalid user ID format")

	// ErrDuplicate is returned when a unique index on contactNo or email rejects a write.
	ErrDuplicate = errors.New("user already exists")
)
