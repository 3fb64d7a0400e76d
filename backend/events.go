package backend

// NativeEventType tags the raw events windowing adapters emit.
type NativeEventType uint8

const (
	NativeNone NativeEventType = iota
	NativeKeyDown
	NativeKeyUp
	NativeText
	NativeMouseMove
	NativeMouseDown
	NativeMouseUp
	NativeWheel
	NativeResize
	NativeFocus
	NativeCloseRequest
)

// NativeEvent is the raw, untranslated form of one window event: a type
// tag plus the union of fields the event kinds use. The engine loop
// translates it into its typed event vocabulary and drops records it
// cannot make sense of; adapters only promise the fields backing their
// tag are set.
//
// Key codes use the engine's key table (adapters map their platform
// scancodes before emitting); Button uses the engine's mouse button
// order.
type NativeEvent struct {
	Type NativeEventType

	Key    uint16
	Rune   rune
	Repeat bool

	Button uint8
	X, Y   float64
	DX, DY float64

	Width, Height int

	Gained bool
}
