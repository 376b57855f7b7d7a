package prompt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/thoreinstein/workspace/internal/platform"
)

func detections() []*platform.Detection {
	return []*platform.Detection{
		{Kind: platform.KindClaudeCode, Status: platform.StatusInstalled, Registered: true},
		{Kind: platform.KindCodex, Status: platform.StatusInstalled},
		{Kind: platform.KindGemini, Status: platform.StatusNotInstalled},
	}
}

func TestSelectClient_EmptyList(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	if _, err := s.SelectClient(nil); !errors.Is(err, ErrNoClients) {
		t.Errorf("expected ErrNoClients, got: %v", err)
	}
}

func TestSelectClient_SingleItem(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	got, err := s.SelectClient(detections()[1:2])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != platform.KindCodex {
		t.Errorf("expected codex, got %q", got)
	}
	// Should not prompt for single item
	if buf.Len() > 0 {
		t.Errorf("expected no output for single item, got: %s", buf.String())
	}
}

func TestSelectClient_ValidSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  platform.Kind
	}{
		{name: "explicit first", input: "1\n", want: platform.KindClaudeCode},
		{name: "explicit third", input: "3\n", want: platform.KindGemini},
		{name: "default on empty", input: "\n", want: platform.KindClaudeCode},
		{name: "whitespace trimmed", input: "  2  \n", want: platform.KindCodex},
		{name: "by name", input: "gemini-cli\n", want: platform.KindGemini},
		{name: "no trailing newline", input: "2", want: platform.KindCodex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			s := NewSelectorWithIO(strings.NewReader(tt.input), &buf)

			got, err := s.SelectClient(detections())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SelectClient() = %q, want %q", got, tt.want)
			}
			if !strings.Contains(buf.String(), "[2] codex (installed)") {
				t.Errorf("prompt missing client list: %s", buf.String())
			}
		})
	}
}

func TestSelectClient_InvalidSelection(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"0\n", "4\n", "abc\n", "-1\n"} {
		var buf bytes.Buffer
		s := NewSelectorWithIO(strings.NewReader(input), &buf)

		if _, err := s.SelectClient(detections()); !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("input %q: expected ErrInvalidSelection, got %v", input, err)
		}
	}
}

func TestSelectClient_EOF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewSelectorWithIO(strings.NewReader(""), &buf)

	if _, err := s.SelectClient(detections()); !errors.Is(err, ErrSelectionCancelled) {
		t.Errorf("expected ErrSelectionCancelled, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	want := []string{"registered", "installed", "not installed"}
	for i, d := range detections() {
		if got := Describe(d); got != want[i] {
			t.Errorf("Describe(%s) = %q, want %q", d.Kind, got, want[i])
		}
	}
}
