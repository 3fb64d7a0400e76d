package hearth

import "log/slog"

// Option configures a Context during creation. Options cover injection
// concerns: which backend adapters to use and where logs go. Everything
// describing the game itself lives in Config.
//
// Example:
//
//	// Default adapter selection
//	ctx, err := hearth.New(cfg)
//
//	// Pin the headless adapters (tests, CI)
//	ctx, err := hearth.New(cfg,
//	    hearth.WithWindowBackend("headless"),
//	    hearth.WithGraphicsBackend("headless"))
type Option func(*options)

// options holds optional configuration for Context creation.
type options struct {
	logger          *slog.Logger
	windowBackend   string
	graphicsBackend string
	audioBackend    string
	confFile        string
	skipConf        bool
	eagerAudio      bool
}

// defaultOptions returns the default context options.
func defaultOptions() options {
	return options{confFile: ConfFileName}
}

// WithLogger enables logging before anything else initializes, so mount
// and backend selection diagnostics are not lost. Equivalent to calling
// SetLogger first.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithWindowBackend pins the windowing adapter by registry name instead
// of priority selection.
func WithWindowBackend(name string) Option {
	return func(o *options) { o.windowBackend = name }
}

// WithGraphicsBackend pins the graphics adapter by registry name.
func WithGraphicsBackend(name string) Option {
	return func(o *options) { o.graphicsBackend = name }
}

// WithAudioBackend pins the audio adapter by registry name.
func WithAudioBackend(name string) Option {
	return func(o *options) { o.audioBackend = name }
}

// WithConfFile changes the overlay path the conf file is read from.
func WithConfFile(name string) Option {
	return func(o *options) { o.confFile = name }
}

// WithoutConfFile disables conf file loading; the Config passed to New
// is used as-is.
func WithoutConfFile() Option {
	return func(o *options) { o.skipConf = true }
}

// WithEagerAudio opens the audio device during New instead of on first
// use. Games that play a sound on their first frame avoid the open
// latency; everything else keeps the lazy default.
func WithEagerAudio() Option {
	return func(o *options) { o.eagerAudio = true }
}
