package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestMultiHandler(t *testing.T) {
	var text, js bytes.Buffer
	h := NewMultiHandler(
		NewHandler(&text, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&js, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h).With("client", "gemini-cli")

	logger.Debug("debug only in file")
	logger.Warn("both")

	if strings.Contains(text.String(), "debug only in file") {
		t.Errorf("text handler should filter debug: %q", text.String())
	}
	if !strings.Contains(text.String(), "client=gemini-cli") {
		t.Errorf("text handler missing attrs: %q", text.String())
	}

	lines := strings.Split(strings.TrimSpace(js.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("json handler lines = %d, want 2: %q", len(lines), js.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["client"] != "gemini-cli" {
		t.Errorf("json record client = %v", rec["client"])
	}
}

func TestMultiHandler_Enabled(t *testing.T) {
	h := NewMultiHandler(NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("expected Info disabled")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("expected Error enabled")
	}
}
