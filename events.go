package hearth

// Event is a window or input event delivered to App.OnEvent, already
// translated from the windowing backend's native form. It is a sealed
// interface; the concrete types below are the complete set.
type Event interface {
	isEvent()
}

// KeyDownEvent reports a key press. Repeat is set for events generated
// by the OS key-repeat while the key stays held.
type KeyDownEvent struct {
	Key    Key
	Repeat bool
}

// KeyUpEvent reports a key release.
type KeyUpEvent struct {
	Key Key
}

// TextEvent carries a unit of text input, after the OS keymap and any
// input method have run. Distinct from key events: one key press can
// produce zero or several of these.
type TextEvent struct {
	Ch rune
}

// MouseMoveEvent reports the pointer position in window coordinates and
// the motion since the previous report.
type MouseMoveEvent struct {
	X, Y   float64
	DX, DY float64
}

// MouseButtonDownEvent reports a button press at a position.
type MouseButtonDownEvent struct {
	Button MouseButton
	X, Y   float64
}

// MouseButtonUpEvent reports a button release at a position.
type MouseButtonUpEvent struct {
	Button MouseButton
	X, Y   float64
}

// WheelEvent reports scroll motion in lines.
type WheelEvent struct {
	DX, DY float64
}

// ResizeEvent reports the new drawable size of the window.
type ResizeEvent struct {
	Width, Height int
}

// FocusEvent reports the window gaining or losing input focus.
type FocusEvent struct {
	Gained bool
}

// CloseRequestEvent reports that the user asked to close the window.
// It is delivered for the frame on which the loop winds down.
type CloseRequestEvent struct{}

func (KeyDownEvent) isEvent()         {}
func (KeyUpEvent) isEvent()           {}
func (TextEvent) isEvent()            {}
func (MouseMoveEvent) isEvent()       {}
func (MouseButtonDownEvent) isEvent() {}
func (MouseButtonUpEvent) isEvent()   {}
func (WheelEvent) isEvent()           {}
func (ResizeEvent) isEvent()          {}
func (FocusEvent) isEvent()           {}
func (CloseRequestEvent) isEvent()    {}

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonX1
	MouseButtonX2

	mouseButtonCount
)

// Key identifies a key by position-independent code. The values are the
// engine's own vocabulary; windowing adapters translate their native
// codes into it.
type Key uint16

const (
	KeyUnknown Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyLeft
	KeyRight
	KeyUp
	KeyDown

	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftSuper
	KeyRightSuper

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyMinus
	KeyEqual
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeySemicolon
	KeyApostrophe
	KeyGrave
	KeyComma
	KeyPeriod
	KeySlash

	keyCount
)
