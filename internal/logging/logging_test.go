package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"DEBUG": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "textlens.log")
	logger, closer, err := New(Config{Level: slog.LevelDebug, FilePath: path, Component: "tui"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("started", "chars", 12)
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "msg=started") || !strings.Contains(out, "component=tui") {
		t.Fatalf("unexpected log output: %s", out)
	}
}

func TestRedactsBufferText(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, Config{Format: FormatJSON})
	logger.Info("changed", "text", "secret draft")
	if strings.Contains(buf.String(), "secret draft") {
		t.Fatalf("buffer text leaked into log: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "[REDACTED]") {
		t.Fatalf("expected redaction marker: %s", buf.String())
	}
}

func TestNewWithoutFileDiscards(t *testing.T) {
	logger, closer, err := New(Config{})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Error("ignored")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
