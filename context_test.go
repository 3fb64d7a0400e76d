package hearth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"

	"github.com/hearthlib/hearth/backend"
	"github.com/hearthlib/hearth/backend/headless"
	"github.com/hearthlib/hearth/vfs"
)

// testConfig redirects the platform directories into the test's temp
// space and returns a minimal valid Config.
func testConfig(t *testing.T) Config {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(t.TempDir(), "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(t.TempDir(), "data"))
	xdg.Reload()

	cfg := DefaultConfig()
	cfg.App = AppID{Author: "acme", Name: "spacegame"}
	return cfg
}

func headlessOptions(extra ...Option) []Option {
	base := []Option{
		WithWindowBackend(backend.BackendHeadless),
		WithGraphicsBackend(backend.BackendHeadless),
		WithAudioBackend(backend.BackendHeadless),
	}
	return append(base, extra...)
}

func newTestContext(t *testing.T, extra ...Option) *Context {
	t.Helper()
	ctx, err := New(testConfig(t), headlessOptions(extra...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { ctx.Close() })
	return ctx
}

func TestNewContext(t *testing.T) {
	ctx := newTestContext(t)

	if ctx.State() != StateRunning {
		t.Errorf("State = %v, want running", ctx.State())
	}

	fsys, err := ctx.Filesystem()
	if err != nil {
		t.Fatalf("Filesystem: %v", err)
	}
	if got := len(fsys.Mounts()); got < 2 {
		t.Errorf("mounts = %d, want at least config and data dirs", got)
	}
	root := fsys.WriteRoot()
	if !strings.Contains(root, filepath.Join("acme", "spacegame")) {
		t.Errorf("write root %q does not end in acme/spacegame", root)
	}
	if _, err := os.Stat(root); err != nil {
		t.Errorf("write root not created: %v", err)
	}

	if _, err := ctx.Clock(); err != nil {
		t.Errorf("Clock: %v", err)
	}
	w, err := ctx.Window()
	if err != nil {
		t.Fatalf("Window: %v", err)
	}
	if width, height := w.Size(); width != 800 || height != 600 {
		t.Errorf("window size = %dx%d, want 800x600", width, height)
	}
	if _, err := ctx.Graphics(); err != nil {
		t.Errorf("Graphics: %v", err)
	}
}

func TestLazyAudio(t *testing.T) {
	ctx := newTestContext(t)

	if ctx.audio.State() != HandleUninitialized {
		t.Fatalf("audio handle = %v before first use, want uninitialized", ctx.audio.State())
	}

	a1, err := ctx.Audio()
	if err != nil {
		t.Fatalf("Audio: %v", err)
	}
	if ctx.audio.State() != HandleReady {
		t.Errorf("audio handle = %v after use, want ready", ctx.audio.State())
	}
	if !a1.(*headless.Audio).Opened() {
		t.Error("audio device not opened by first access")
	}

	a2, err := ctx.Audio()
	if err != nil {
		t.Fatalf("second Audio: %v", err)
	}
	if a1 != a2 {
		t.Error("Audio returned a different instance on second call")
	}
}

func TestEagerAudio(t *testing.T) {
	ctx := newTestContext(t, WithEagerAudio())
	if ctx.audio.State() != HandleReady {
		t.Errorf("audio handle = %v with WithEagerAudio, want ready", ctx.audio.State())
	}
}

func TestAccessorsAfterClose(t *testing.T) {
	ctx := newTestContext(t)
	w, _ := ctx.Window()

	if err := ctx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if ctx.State() != StateClosed {
		t.Fatalf("State = %v, want closed", ctx.State())
	}
	if !w.(*headless.Window).Closed() {
		t.Error("window not closed by Context.Close")
	}

	if _, err := ctx.Filesystem(); !errors.Is(err, ErrContextClosed) {
		t.Errorf("Filesystem error = %v, want ErrContextClosed", err)
	}
	if _, err := ctx.Clock(); !errors.Is(err, ErrContextClosed) {
		t.Errorf("Clock error = %v, want ErrContextClosed", err)
	}
	if _, err := ctx.Window(); !errors.Is(err, ErrContextClosed) {
		t.Errorf("Window error = %v, want ErrContextClosed", err)
	}
	if _, err := ctx.Graphics(); !errors.Is(err, ErrContextClosed) {
		t.Errorf("Graphics error = %v, want ErrContextClosed", err)
	}
	if _, err := ctx.Audio(); !errors.Is(err, ErrContextClosed) {
		t.Errorf("Audio error = %v, want ErrContextClosed", err)
	}

	if err := ctx.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestCloseBeforeAudioUse(t *testing.T) {
	ctx := newTestContext(t)
	if err := ctx.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	// The audio device was never opened; closing must not open it.
	if ctx.audio.State() != HandleClosed {
		t.Errorf("audio handle = %v, want closed", ctx.audio.State())
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.App = AppID{}

	_, err := New(cfg, headlessOptions()...)
	var cerr *ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("New without AppID error = %v, want *ConfigError", err)
	}
}

func TestNewUnknownBackend(t *testing.T) {
	cfg := testConfig(t)

	_, err := New(cfg, WithWindowBackend("no-such-adapter"))
	var berr *BackendInitError
	if !errors.As(err, &berr) {
		t.Fatalf("New error = %v, want *BackendInitError", err)
	}
	if berr.Backend != "no-such-adapter" {
		t.Errorf("BackendInitError.Backend = %q, want %q", berr.Backend, "no-such-adapter")
	}
	if !errors.Is(err, backend.ErrBackendNotAvailable) {
		t.Errorf("error chain %v does not include ErrBackendNotAvailable", err)
	}
}

func TestNewAppliesConfFile(t *testing.T) {
	cfg := testConfig(t)

	// The conf file lives in the user config directory, which New
	// mounts before reading it.
	confDir := filepath.Join(xdg.ConfigHome, "acme", "spacegame")
	if err := os.MkdirAll(confDir, 0o755); err != nil {
		t.Fatal(err)
	}
	conf := "title = \"Tuned\"\n\nwindow {\n  width  = 1024\n  height = 768\n}\n"
	if err := os.WriteFile(filepath.Join(confDir, "conf.hcl"), []byte(conf), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, err := New(cfg, headlessOptions()...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer ctx.Close()

	if got := ctx.Config(); got.Title != "Tuned" || got.Width != 1024 || got.Height != 768 {
		t.Errorf("effective config = %q %dx%d, want Tuned 1024x768", got.Title, got.Width, got.Height)
	}
	w, _ := ctx.Window()
	if width, _ := w.Size(); width != 1024 {
		t.Errorf("window width = %d, want conf file's 1024", width)
	}

	// WithoutConfFile leaves the passed Config untouched.
	ctx2, err := New(cfg, headlessOptions(WithoutConfFile())...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer ctx2.Close()
	if got := ctx2.Config(); got.Width != 800 {
		t.Errorf("width with WithoutConfFile = %d, want 800", got.Width)
	}
}

func TestSetTitle(t *testing.T) {
	ctx := newTestContext(t)
	w, _ := ctx.Window()

	ctx.SetTitle("Renamed")
	if got := w.(*headless.Window).Title(); got != "Renamed" {
		t.Errorf("window title = %q, want %q", got, "Renamed")
	}
	if ctx.Config().Title != "Renamed" {
		t.Errorf("config title = %q, want %q", ctx.Config().Title, "Renamed")
	}
}

func TestRequestQuit(t *testing.T) {
	ctx := newTestContext(t)
	if ctx.QuitRequested() {
		t.Fatal("QuitRequested before request")
	}
	ctx.RequestQuit()
	ctx.RequestQuit()
	if !ctx.QuitRequested() {
		t.Error("QuitRequested after request = false")
	}
}

func TestResourceMounts(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sprite.png"), []byte("pix"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(t)
	cfg.Resources = []vfs.MountSpec{{Kind: vfs.KindDir, Location: dir}}

	ctx, err := New(cfg, headlessOptions()...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer ctx.Close()

	fsys, _ := ctx.Filesystem()
	data, err := fsys.ReadFile("sprite.png")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "pix" {
		t.Errorf("ReadFile = %q, want pix", data)
	}
}
