package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default logger should not be enabled for %v", level)
		}
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(NewText(&buf, false))
	Logger().Debug("hidden")
	Logger().Info("frame written", "index", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written without verbose: %q", out)
	}
	if !strings.Contains(out, "frame written") || !strings.Contains(out, "index=3") {
		t.Errorf("output = %q, want info record", out)
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(NewText(&buf, true))
	SetLogger(nil)
	Logger().Warn("dropped")
	if buf.Len() != 0 {
		t.Errorf("output after SetLogger(nil) = %q, want empty", buf.String())
	}
}
