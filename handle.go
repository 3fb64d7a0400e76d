package hearth

import "fmt"

// HandleState is the lifecycle position of a SubsystemHandle.
type HandleState uint8

const (
	// HandleUninitialized means the subsystem has not been created yet.
	HandleUninitialized HandleState = iota
	// HandleReady means the subsystem is live and Get returns it.
	HandleReady
	// HandleClosed means the subsystem has been torn down.
	HandleClosed
)

func (s HandleState) String() string {
	switch s {
	case HandleUninitialized:
		return "uninitialized"
	case HandleReady:
		return "ready"
	case HandleClosed:
		return "closed"
	default:
		return fmt.Sprintf("HandleState(%d)", uint8(s))
	}
}

// SubsystemHandle owns one backend service with deferred construction.
// The first Get runs the init function; Ensure forces it eagerly. The
// handle is never shared: the Context holds it exclusively and closes
// it exactly once during teardown.
//
// The zero value is not usable; construct with NewSubsystemHandle.
type SubsystemHandle[T any] struct {
	name    string
	init    func() (T, error)
	release func(T) error

	value T
	state HandleState
}

// NewSubsystemHandle returns a lazy handle. init builds the subsystem
// on first use; release tears it down on Close and may be nil.
func NewSubsystemHandle[T any](name string, init func() (T, error), release func(T) error) *SubsystemHandle[T] {
	return &SubsystemHandle[T]{name: name, init: init, release: release}
}

// Get returns the subsystem, constructing it on first call. A failed
// construction leaves the handle uninitialized, so a later Get retries.
func (h *SubsystemHandle[T]) Get() (T, error) {
	var zero T
	switch h.state {
	case HandleClosed:
		return zero, fmt.Errorf("%w: %s", ErrSubsystemClosed, h.name)
	case HandleReady:
		return h.value, nil
	}
	v, err := h.init()
	if err != nil {
		return zero, fmt.Errorf("%s: %w", h.name, err)
	}
	h.value = v
	h.state = HandleReady
	Logger().Info("subsystem initialized", "subsystem", h.name)
	return v, nil
}

// Ensure initializes the subsystem now if it is still pending. Used for
// subsystems the configuration wants eager.
func (h *SubsystemHandle[T]) Ensure() error {
	_, err := h.Get()
	return err
}

// State reports the handle's lifecycle position.
func (h *SubsystemHandle[T]) State() HandleState { return h.state }

// Close tears the subsystem down if it was ever initialized. Further
// Close calls are no-ops; further Gets fail with ErrSubsystemClosed.
func (h *SubsystemHandle[T]) Close() error {
	if h.state == HandleClosed {
		return nil
	}
	prev := h.state
	h.state = HandleClosed
	var zero T
	v := h.value
	h.value = zero
	if prev != HandleReady || h.release == nil {
		return nil
	}
	if err := h.release(v); err != nil {
		return fmt.Errorf("%s: close: %w", h.name, err)
	}
	return nil
}
