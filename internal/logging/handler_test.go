package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	now := time.Now()
	logger.Info("hello world", "foo", "value")

	output := buf.String()
	for _, want := range []string{"INFO", "hello world", "foo=value"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %q", want, output)
		}
	}
	// Kitchen format may roll over a minute between Now and Handle.
	if !strings.Contains(output, now.Format(time.Kitchen)) &&
		!strings.Contains(output, now.Add(time.Minute).Format(time.Kitchen)) {
		t.Errorf("expected time in output, got: %q", output)
	}
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, nil)).With("common", "attr").WithGroup("store")

	logger.Info("message", "path", "/tmp/x", slog.Group("entry", "name", "workspace"))

	output := buf.String()
	for _, want := range []string{"common=attr", "store.path=/tmp/x", "store.entry.name=workspace"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %q", want, output)
		}
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	ctx := t.Context()
	if h.Enabled(ctx, slog.LevelInfo) {
		t.Error("expected Info level to be disabled when min level is Warn")
	}
	if !h.Enabled(ctx, slog.LevelWarn) {
		t.Error("expected Warn level to be enabled")
	}
}

func TestHandler_TraceLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	logger.Log(t.Context(), LevelTrace, "merge detail")

	if !strings.Contains(buf.String(), "TRACE") {
		t.Errorf("expected TRACE label, got: %q", buf.String())
	}
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil)

	r := slog.NewRecord(time.Time{}, slog.LevelInfo, "no time", 0)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if !strings.HasPrefix(buf.String(), "INFO") {
		t.Errorf("expected output to start with level, got: %q", buf.String())
	}
}

func TestHandler_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.Info("sensitive data", "api_key", "secret12345", "Token", "ghp_abcdef")

	output := buf.String()
	if strings.Contains(output, "secret12345") || strings.Contains(output, "ghp_abcdef") {
		t.Errorf("secret leaked: %q", output)
	}
	if !strings.Contains(output, "api_key=****2345") {
		t.Errorf("expected masked api_key, got: %q", output)
	}
	if !strings.Contains(output, "Token=****cdef") {
		t.Errorf("expected masked Token, got: %q", output)
	}

	buf.Reset()
	logger.Info("token value", "foo", "ghp_secrettoken")
	if !strings.Contains(buf.String(), "foo=****oken") {
		t.Errorf("expected value masked by prefix, got: %q", buf.String())
	}
}

func TestMaskEnv(t *testing.T) {
	got := MaskEnv(map[string]string{
		"WA_ROOT":        "/work",
		"OPENAI_API_KEY": "sk-abcdef",
		"PLAIN":          "xoxb-12345678",
	})

	if got["WA_ROOT"] != "/work" {
		t.Errorf("WA_ROOT = %q, want unchanged", got["WA_ROOT"])
	}
	if got["OPENAI_API_KEY"] != "****cdef" {
		t.Errorf("OPENAI_API_KEY = %q, want masked", got["OPENAI_API_KEY"])
	}
	if got["PLAIN"] != "****5678" {
		t.Errorf("PLAIN = %q, want masked by prefix", got["PLAIN"])
	}
	if MaskEnv(nil) != nil {
		t.Error("MaskEnv(nil) should be nil")
	}
	if MaskValue("abc") != "********" {
		t.Error("short values should be fully masked")
	}
}
