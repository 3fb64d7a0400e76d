package hearth

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/hearthlib/hearth/backend"
	"github.com/hearthlib/hearth/vfs"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(nil, slog.LevelError) {
		t.Error("default logger should be disabled at every level")
	}
}

func TestSetLoggerPropagates(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	SetLogger(l)
	defer SetLogger(nil)

	if Logger() != l {
		t.Error("Logger() did not return the configured logger")
	}

	// Sub-packages share the configuration.
	vfs.Logger().Info("vfs message")
	backend.Logger().Info("backend message")
	out := buf.String()
	if !strings.Contains(out, "vfs message") {
		t.Error("vfs package did not pick up the logger")
	}
	if !strings.Contains(out, "backend message") {
		t.Error("backend package did not pick up the logger")
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	SetLogger(slog.Default())
	SetLogger(nil)
	if Logger().Enabled(nil, slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent default")
	}
	if vfs.Logger().Enabled(nil, slog.LevelError) {
		t.Error("SetLogger(nil) should silence the vfs package too")
	}
}
