package hearth

import (
	"errors"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/hearthlib/hearth/backend"
)

// App is the game. Run calls its methods from the main loop goroutine,
// never concurrently:
//
//   - OnStart once, before the first frame. Load resources here.
//   - OnEvent for every translated window event, in arrival order,
//     before that frame's updates.
//   - OnUpdate zero or more times per frame, each call one fixed step
//     of simulation time.
//   - OnRender exactly once per frame. alpha in [0,1) is the fraction
//     of a fixed step between the last simulation state and the next;
//     interpolate with it for smooth motion.
//   - OnShutdown once after the loop ends (only if OnStart succeeded).
//
// An error from OnStart, OnUpdate or OnRender ends the loop and comes
// back from Run after teardown.
type App interface {
	OnStart(ctx *Context) error
	OnEvent(ctx *Context, ev Event)
	OnUpdate(ctx *Context, dt time.Duration) error
	OnRender(ctx *Context, alpha float64) error
	OnShutdown(ctx *Context)
}

// Run drives the loop until the game requests quit, the window is
// closed, or a callback fails. It owns the Context from here on:
// whatever happens, the Context is closed by the time Run returns.
//
// A presentation failure is wrapped in *FatalRenderError; teardown is
// still attempted and any teardown errors are joined to the result.
func Run(ctx *Context, app App) error {
	if ctx == nil {
		return fmt.Errorf("%w: nil context", ErrContextClosed)
	}
	if err := ctx.guard(); err != nil {
		return err
	}
	err := runLoop(ctx, app)
	if cerr := ctx.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return err
}

func runLoop(ctx *Context, app App) error {
	if err := app.OnStart(ctx); err != nil {
		return fmt.Errorf("hearth: start: %w", err)
	}
	defer app.OnShutdown(ctx)

	Logger().Info("loop started")
	for !ctx.quit && !ctx.window.CloseRequested() {
		drainEvents(ctx, app)

		ctx.clock.Poll()
		for ctx.clock.ConsumeFixedStep() {
			if err := app.OnUpdate(ctx, ctx.clock.FixedStep()); err != nil {
				return fmt.Errorf("hearth: update: %w", err)
			}
		}

		if err := app.OnRender(ctx, ctx.clock.Alpha()); err != nil {
			return fmt.Errorf("hearth: render: %w", err)
		}
		if err := ctx.graphics.Present(); err != nil {
			Logger().Error("present failed", "graphics", ctx.graphics.Name(), "error", err)
			return &FatalRenderError{Err: err}
		}
	}
	Logger().Info("loop ended")
	return nil
}

// drainEvents empties the window's native queue, translating each event
// and delivering it in arrival order. Events that do not translate are
// logged and dropped; one bad record must not take the loop down.
func drainEvents(ctx *Context, app App) {
	for {
		ne, ok := ctx.window.PollEvent()
		if !ok {
			return
		}
		ev, err := translateEvent(ne)
		if err != nil {
			ctx.eventsDropped++
			Logger().Warn("dropping malformed event", "error", err)
			continue
		}
		app.OnEvent(ctx, ev)
	}
}

// translateEvent converts a raw windowing record into the engine event
// vocabulary, validating as it goes.
func translateEvent(ne backend.NativeEvent) (Event, error) {
	switch ne.Type {
	case backend.NativeKeyDown:
		key := Key(ne.Key)
		if key >= keyCount {
			return nil, fmt.Errorf("key code %d out of range", ne.Key)
		}
		return KeyDownEvent{Key: key, Repeat: ne.Repeat}, nil

	case backend.NativeKeyUp:
		key := Key(ne.Key)
		if key >= keyCount {
			return nil, fmt.Errorf("key code %d out of range", ne.Key)
		}
		return KeyUpEvent{Key: key}, nil

	case backend.NativeText:
		if ne.Rune == 0 || !utf8.ValidRune(ne.Rune) {
			return nil, fmt.Errorf("invalid text rune %#x", ne.Rune)
		}
		return TextEvent{Ch: ne.Rune}, nil

	case backend.NativeMouseMove:
		if !finite(ne.X, ne.Y, ne.DX, ne.DY) {
			return nil, fmt.Errorf("non-finite mouse coordinates")
		}
		return MouseMoveEvent{X: ne.X, Y: ne.Y, DX: ne.DX, DY: ne.DY}, nil

	case backend.NativeMouseDown:
		if MouseButton(ne.Button) >= mouseButtonCount {
			return nil, fmt.Errorf("mouse button %d out of range", ne.Button)
		}
		return MouseButtonDownEvent{Button: MouseButton(ne.Button), X: ne.X, Y: ne.Y}, nil

	case backend.NativeMouseUp:
		if MouseButton(ne.Button) >= mouseButtonCount {
			return nil, fmt.Errorf("mouse button %d out of range", ne.Button)
		}
		return MouseButtonUpEvent{Button: MouseButton(ne.Button), X: ne.X, Y: ne.Y}, nil

	case backend.NativeWheel:
		if !finite(ne.DX, ne.DY) {
			return nil, fmt.Errorf("non-finite wheel delta")
		}
		return WheelEvent{DX: ne.DX, DY: ne.DY}, nil

	case backend.NativeResize:
		if ne.Width <= 0 || ne.Height <= 0 {
			return nil, fmt.Errorf("resize to %dx%d", ne.Width, ne.Height)
		}
		return ResizeEvent{Width: ne.Width, Height: ne.Height}, nil

	case backend.NativeFocus:
		return FocusEvent{Gained: ne.Gained}, nil

	case backend.NativeCloseRequest:
		return CloseRequestEvent{}, nil

	default:
		return nil, fmt.Errorf("unknown native event type %d", ne.Type)
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
