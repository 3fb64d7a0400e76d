package hearth

import (
	"errors"
	"fmt"
)

// Package errors for the engine core.
var (
	// ErrContextClosed is returned by Context accessors after Close.
	ErrContextClosed = errors.New("hearth: context closed")

	// ErrSubsystemClosed is returned by SubsystemHandle.Get after the
	// handle has been closed.
	ErrSubsystemClosed = errors.New("hearth: subsystem closed")
)

// ConfigError reports an invalid configuration value. Field names the
// offending Config field or conf file attribute.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hearth: config %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("hearth: config %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// BackendInitError reports that a backend could not be acquired or
// initialized. Backend names the adapter (registry name) that failed,
// so startup diagnostics can say which subsystem is at fault.
type BackendInitError struct {
	Backend string
	Err     error
}

func (e *BackendInitError) Error() string {
	return fmt.Sprintf("hearth: backend %s: init failed: %v", e.Backend, e.Err)
}

func (e *BackendInitError) Unwrap() error { return e.Err }

// FatalRenderError wraps a presentation failure (lost device, destroyed
// surface). It aborts the loop after a clean teardown attempt.
type FatalRenderError struct {
	Err error
}

func (e *FatalRenderError) Error() string {
	return fmt.Sprintf("hearth: fatal render error: %v", e.Err)
}

func (e *FatalRenderError) Unwrap() error { return e.Err }
