package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestConsoleHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger = WithComponent(logger, "transcriber")
	logger.Info("run complete", Args(
		String("model", "small"),
		Int("segments", 3),
	)...)

	line := buf.String()
	if !strings.Contains(line, " INFO transcriber: run complete") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "model=small") || !strings.Contains(line, "segments=3") {
		t.Fatalf("missing attrs in line: %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Warn("extract", Args(Error(errors.New("exit status 1")))...)
	if !strings.Contains(buf.String(), `error="exit status 1"`) {
		t.Fatalf("expected quoted error value, got %q", buf.String())
	}
}

func TestJSONHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("probe", Args(String("binary", "ffmpeg"))...)

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("invalid json output %q: %v", buf.String(), err)
	}
	if payload["level"] != "debug" {
		t.Fatalf("level = %v, want debug", payload["level"])
	}
	if payload["binary"] != "ffmpeg" {
		t.Fatalf("binary = %v, want ffmpeg", payload["binary"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatal("expected ts field in json output")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}
	logger.Warn("visible")
	if !strings.Contains(buf.String(), "WARN visible") {
		t.Fatalf("expected warn line, got %q", buf.String())
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
