package hearth

import (
	"errors"
	"fmt"
	"os"

	"github.com/hearthlib/hearth/backend"
	"github.com/hearthlib/hearth/vfs"
)

// State is the lifecycle position of a Context. It only ever moves
// forward: Uninitialized, Running, ShuttingDown, Closed.
type State uint8

const (
	StateUninitialized State = iota
	StateRunning
	StateShuttingDown
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateShuttingDown:
		return "shutting down"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Context owns the engine's subsystems for one application run: the
// resource overlay, the frame clock, the window, graphics, and the
// lazily opened audio device. Every subsystem is reached through it and
// dies with it; after Close (or outside Running in general) the
// accessors fail with ErrContextClosed.
//
// A Context belongs to the main loop goroutine. Nothing here locks.
type Context struct {
	state State
	cfg   Config
	opts  options

	fsys     *vfs.FS
	clock    *FrameClock
	window   backend.Window
	graphics backend.Graphics
	audio    *SubsystemHandle[backend.Audio]

	quit          bool
	eventsDropped uint64
}

// New builds a running Context: it assembles the resource overlay,
// applies the conf file if one is present, then acquires the window and
// graphics adapters. Audio stays unopened until the first Audio call.
//
// Backend acquisition failures come back as *BackendInitError naming
// the adapter, so startup diagnostics can say which subsystem is at
// fault. On any failure everything already acquired is released.
func New(cfg Config, opts ...Option) (*Context, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger != nil {
		SetLogger(o.logger)
	}

	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	fsys, err := buildOverlay(cfg)
	if err != nil {
		return nil, err
	}

	if !o.skipConf {
		cfg, err = LoadConf(fsys, o.confFile, cfg)
		if err != nil {
			fsys.Close()
			return nil, err
		}
		if err := cfg.validate(); err != nil {
			fsys.Close()
			return nil, err
		}
	}

	window, err := backend.NewWindow(o.windowBackend)
	if err != nil {
		fsys.Close()
		return nil, &BackendInitError{Backend: requestedName(o.windowBackend), Err: err}
	}
	wcfg := backend.WindowConfig{
		Title:     cfg.Title,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Resizable: cfg.Resizable,
		Vsync:     cfg.Vsync,
	}
	if err := window.Init(wcfg); err != nil {
		fsys.Close()
		return nil, &BackendInitError{Backend: window.Name(), Err: err}
	}

	graphics, err := backend.NewGraphics(o.graphicsBackend)
	if err != nil {
		window.Close()
		fsys.Close()
		return nil, &BackendInitError{Backend: requestedName(o.graphicsBackend), Err: err}
	}
	if err := graphics.Init(window); err != nil {
		window.Close()
		fsys.Close()
		return nil, &BackendInitError{Backend: graphics.Name(), Err: err}
	}

	c := &Context{
		state:    StateRunning,
		cfg:      cfg,
		opts:     o,
		fsys:     fsys,
		clock:    NewFrameClock(cfg.FixedStep),
		window:   window,
		graphics: graphics,
	}
	c.audio = NewSubsystemHandle("audio",
		func() (backend.Audio, error) {
			a, err := backend.NewAudio(o.audioBackend)
			if err != nil {
				return nil, err
			}
			if err := a.Init(); err != nil {
				return nil, err
			}
			return a, nil
		},
		func(a backend.Audio) error { return a.Close() })

	if o.eagerAudio {
		if err := c.audio.Ensure(); err != nil {
			c.Close()
			return nil, &BackendInitError{Backend: requestedName(o.audioBackend), Err: err}
		}
	}

	Logger().Info("context ready",
		"window", window.Name(),
		"graphics", graphics.Name(),
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"fixed_step", cfg.FixedStep)
	return c, nil
}

// buildOverlay mounts, in shadowing order: the user config directory,
// the user data directory (as write root), the Config's resource
// mounts, and finally the dev resources directory when that build tag
// is on.
func buildOverlay(cfg Config) (*vfs.FS, error) {
	cfgDir, err := vfs.UserConfigDir(cfg.App.Author, cfg.App.Name)
	if err != nil {
		return nil, &ConfigError{Field: "App", Reason: "bad application id", Err: err}
	}
	dataDir, err := vfs.UserDataDir(cfg.App.Author, cfg.App.Name)
	if err != nil {
		return nil, &ConfigError{Field: "App", Reason: "bad application id", Err: err}
	}

	fsys := vfs.New()
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return nil, fmt.Errorf("hearth: create config dir: %w", err)
	}
	if err := fsys.Mount(vfs.MountSpec{Kind: vfs.KindDir, Location: cfgDir}); err != nil {
		fsys.Close()
		return nil, err
	}
	if err := fsys.SetWriteRoot(dataDir); err != nil {
		fsys.Close()
		return nil, err
	}
	for _, spec := range cfg.Resources {
		if err := fsys.Mount(spec); err != nil {
			fsys.Close()
			return nil, err
		}
	}
	mountDevResources(fsys)
	return fsys, nil
}

func requestedName(name string) string {
	if name == "" {
		return "default"
	}
	return name
}

func (c *Context) guard() error {
	if c.state != StateRunning {
		return fmt.Errorf("%w (state %s)", ErrContextClosed, c.state)
	}
	return nil
}

// State reports the lifecycle position.
func (c *Context) State() State { return c.state }

// Config returns the effective configuration, conf file included.
func (c *Context) Config() Config { return c.cfg }

// Filesystem returns the resource overlay.
func (c *Context) Filesystem() (*vfs.FS, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	return c.fsys, nil
}

// Clock returns the frame clock.
func (c *Context) Clock() (*FrameClock, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	return c.clock, nil
}

// Window returns the windowing adapter.
func (c *Context) Window() (backend.Window, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	return c.window, nil
}

// Graphics returns the graphics adapter.
func (c *Context) Graphics() (backend.Graphics, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	return c.graphics, nil
}

// Audio returns the audio adapter, opening the device on first call. A
// failed open is reported as *BackendInitError and retried on the next
// call.
func (c *Context) Audio() (backend.Audio, error) {
	if err := c.guard(); err != nil {
		return nil, err
	}
	a, err := c.audio.Get()
	if err != nil {
		return nil, &BackendInitError{Backend: requestedName(c.opts.audioBackend), Err: err}
	}
	return a, nil
}

// SetTitle updates the window title and the stored Config.
func (c *Context) SetTitle(title string) {
	if c.guard() != nil {
		return
	}
	c.cfg.Title = title
	c.window.SetTitle(title)
}

// RequestQuit asks the loop to end after the current iteration. Safe to
// call any number of times; there is no way to un-request.
func (c *Context) RequestQuit() {
	if !c.quit {
		Logger().Debug("quit requested")
	}
	c.quit = true
}

// QuitRequested reports whether RequestQuit has been called.
func (c *Context) QuitRequested() bool { return c.quit }

// EventsDropped counts native events discarded because they could not
// be translated. A growing number points at a misbehaving windowing
// adapter.
func (c *Context) EventsDropped() uint64 { return c.eventsDropped }

// Close tears the Context down: audio (if it was ever opened), then
// graphics, then the window, in reverse acquisition order, then the
// resource overlay. Close is idempotent; errors from the individual
// teardowns are joined.
func (c *Context) Close() error {
	switch c.state {
	case StateClosed:
		return nil
	case StateUninitialized:
		c.state = StateClosed
		return nil
	}

	c.state = StateShuttingDown
	Logger().Info("context shutting down")

	var errs []error
	if c.audio != nil {
		if err := c.audio.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.graphics != nil {
		if err := c.graphics.Close(); err != nil {
			errs = append(errs, fmt.Errorf("graphics: %w", err))
		}
	}
	if c.window != nil {
		if err := c.window.Close(); err != nil {
			errs = append(errs, fmt.Errorf("window: %w", err))
		}
	}
	if c.fsys != nil {
		if err := c.fsys.Close(); err != nil {
			errs = append(errs, fmt.Errorf("vfs: %w", err))
		}
	}

	c.state = StateClosed
	Logger().Info("context closed")
	return errors.Join(errs...)
}
