package backend

import "errors"

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when no registered backend
	// matches a request.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrClosed is returned when operations are called after Close.
	ErrClosed = errors.New("backend: closed")

	// ErrInvalidHandle is returned for operations on handles that were
	// never created or were already destroyed.
	ErrInvalidHandle = errors.New("backend: invalid handle")
)
