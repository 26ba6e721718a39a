package logutil

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestNewTimingLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	done := NewTimingLogger(logger, time.Now(), "executed sql query", "method", "ListEntries")
	done()

	out := buf.String()
	if !strings.Contains(out, "executed sql query") {
		t.Errorf("expected message in output, got: %s", out)
	}
	if !strings.Contains(out, "method=ListEntries") {
		t.Errorf("expected method field in output, got: %s", out)
	}
	if !strings.Contains(out, "duration=") {
		t.Errorf("expected duration field in output, got: %s", out)
	}
}

func TestLogAndWrapErr(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	base := errors.New("boom")
	wrapped := LogAndWrapErr(logger, "failed to create entry", base)

	if wrapped == nil {
		t.Fatal("expected non-nil wrapped error")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match the base error via errors.Is")
	}
	if !strings.Contains(buf.String(), "failed to create entry") {
		t.Errorf("expected log output to contain message, got: %s", buf.String())
	}
}

func TestLogAndWrapErrNil(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	if err := LogAndWrapErr(logger, "should not log", nil); err != nil {
		t.Errorf("expected nil for nil input, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no log output for nil error, got: %s", buf.String())
	}
}

func TestDebugAndWrapErr(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferLogger(&buf)

	base := errors.New("no rows")
	wrapped := DebugAndWrapErr(logger, "failed to get entry", base)

	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match the base error via errors.Is")
	}
	if !strings.Contains(buf.String(), "level=DEBUG") {
		t.Errorf("expected debug level output, got: %s", buf.String())
	}
}
