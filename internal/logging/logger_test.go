package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestConsoleHandlerFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	handler := &consoleHandler{writer: &buf, level: slog.LevelInfo}
	logger := slog.New(handler).With(String(FieldComponent, "stitcher"))

	logger.Info("segments emitted", Int("segments", 3), String("video_id", "abc123"))

	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, "INFO stitcher: segments emitted") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "segments=3") || !strings.Contains(line, "video_id=abc123") {
		t.Fatalf("missing attrs in line: %q", line)
	}
}

func TestConsoleHandlerQuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	handler := &consoleHandler{writer: &buf, level: slog.LevelInfo}
	slog.New(handler).Warn("dropping cue", String("reason", "bad timestamp"))

	if !strings.Contains(buf.String(), `reason="bad timestamp"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	handler := &consoleHandler{writer: &buf, level: slog.LevelWarn}
	slog.New(handler).Info("noise")
	if buf.Len() != 0 {
		t.Fatalf("expected info below warn to be dropped, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should not be enabled")
	}
	logger.Error("ignored", Duration("elapsed", time.Second))
}
