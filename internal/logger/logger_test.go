package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandleWritesLineWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}, false)

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "program halted normally", 0)
	r.AddAttrs(slog.Int("cycles", 42))

	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "program halted normally") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.Contains(out, "cycles=42") {
		t.Errorf("output %q missing attr", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("output %q should end with a newline", out)
	}
}

func TestNewHandlerDefaultsNilWriterToDiscard(t *testing.T) {
	h := NewHandler(nil, nil, false)
	r := slog.NewRecord(time.Now(), slog.LevelInfo, "no panic please", 0)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle with nil writer: %v", err)
	}
}

func TestEnabledRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	h := NewHandler(&buf, &slog.HandlerOptions{Level: levelVar}, false)

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Info should not be enabled when level is Warn")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("Error should be enabled when level is Warn")
	}
}

func TestSetTrace(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, nil, false)
	if h.trace {
		t.Fatal("trace should start false")
	}
	h.SetTrace(true)
	if !h.trace {
		t.Error("SetTrace(true) should set trace")
	}
}
