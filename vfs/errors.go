package vfs

import (
	"errors"
	"fmt"
)

// Package errors for the virtual filesystem.
var (
	// ErrNotFound is returned when a path resolves to no file on any mount.
	ErrNotFound = errors.New("vfs: not found")

	// ErrInvalidPath is returned for paths that are malformed or escape
	// the namespace root after normalization.
	ErrInvalidPath = errors.New("vfs: invalid path")

	// ErrNoWriteRoot is returned by write operations when no write root
	// has been configured.
	ErrNoWriteRoot = errors.New("vfs: no write root configured")

	// ErrCorruptArchive is reported by Mount when an archive's table of
	// contents cannot be parsed.
	ErrCorruptArchive = errors.New("vfs: corrupt archive")

	// ErrNotMounted is returned by Unmount when no mount matches the
	// given location.
	ErrNotMounted = errors.New("vfs: not mounted")
)

// MountError describes a failure to attach a mount. It wraps the
// underlying cause, so errors.Is works against ErrCorruptArchive and
// OS-level sentinels.
type MountError struct {
	Kind     Kind
	Location string
	Err      error
}

func (e *MountError) Error() string {
	return fmt.Sprintf("vfs: mount %s %q: %v", e.Kind, e.Location, e.Err)
}

func (e *MountError) Unwrap() error { return e.Err }
