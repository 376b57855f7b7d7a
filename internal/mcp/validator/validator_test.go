package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/thoreinstein/workspace/internal/mcp"
)

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name           string
		server         *mcp.Server
		wantErrCount   int
		wantWarnCount  int
		wantField      string
		wantMsgContain string
		wantErr        error
	}{
		{
			name:   "default server",
			server: mcp.DefaultServer("/work"),
		},
		{
			name: "server with env",
			server: &mcp.Server{
				Name:    "workspace",
				Command: "uv",
				Env:     map[string]string{"WA_ROOT": "/work"},
			},
		},
		{
			name:           "nil server",
			server:         nil,
			wantErrCount:   1,
			wantMsgContain: "server is nil",
		},
		{
			name:           "missing name",
			server:         &mcp.Server{Command: "uv"},
			wantErrCount:   1,
			wantField:      "name",
			wantMsgContain: "name is required",
			wantErr:        ErrMissingServerName,
		},
		{
			name:         "name with dot",
			server:       &mcp.Server{Name: "work.space", Command: "uv"},
			wantErrCount: 1,
			wantField:    "name",
			wantErr:      ErrInvalidServerName,
		},
		{
			name:           "missing command",
			server:         &mcp.Server{Name: "workspace"},
			wantErrCount:   1,
			wantField:      "command",
			wantMsgContain: "command is required",
			wantErr:        ErrMissingCommand,
		},
		{
			name: "empty env key",
			server: &mcp.Server{
				Name:    "workspace",
				Command: "uv",
				Env:     map[string]string{"": "x"},
			},
			wantErrCount: 1,
			wantField:    "env",
			wantErr:      ErrEmptyEnvKey,
		},
		{
			name:           "command with arguments folded in",
			server:         &mcp.Server{Name: "workspace", Command: "uv run"},
			wantWarnCount:  1,
			wantField:      "command",
			wantMsgContain: "whitespace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := New().Validate(tt.server)

			if got := len(Errors(errs)); got != tt.wantErrCount {
				t.Errorf("error count = %d, want %d: %v", got, tt.wantErrCount, errs)
			}
			if got := len(Warnings(errs)); got != tt.wantWarnCount {
				t.Errorf("warning count = %d, want %d: %v", got, tt.wantWarnCount, errs)
			}
			if len(errs) == 0 {
				return
			}
			first := errs[0]
			if tt.wantField != "" && first.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", first.Field, tt.wantField)
			}
			if tt.wantMsgContain != "" && !strings.Contains(first.Message, tt.wantMsgContain) {
				t.Errorf("Message = %q, want to contain %q", first.Message, tt.wantMsgContain)
			}
			if tt.wantErr != nil && !errors.Is(first, tt.wantErr) {
				t.Errorf("errors.Is(%v, %v) = false", first, tt.wantErr)
			}
		})
	}
}

func TestValidator_WithLookPath(t *testing.T) {
	missing := errors.New("not found")
	v := New(WithLookPath(func(string) (string, error) { return "", missing }))

	errs := v.Validate(mcp.DefaultServer("/work"))

	if HasErrors(errs) {
		t.Fatalf("unexpected errors: %v", errs)
	}
	warns := Warnings(errs)
	if len(warns) != 1 {
		t.Fatalf("warnings = %v, want 1", warns)
	}
	if !errors.Is(warns[0], missing) {
		t.Errorf("warning should wrap lookup error")
	}

	found := New(WithLookPath(func(c string) (string, error) { return "/usr/bin/" + c, nil }))
	if errs := found.Validate(mcp.DefaultServer("/work")); errs != nil {
		t.Errorf("Validate() = %v, want nil", errs)
	}
}

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "server and field",
			err:  &ValidationError{ServerName: "ws", Field: "command", Message: "command is required"},
			want: `error: server "ws" field "command": command is required`,
		},
		{
			name: "server only",
			err:  &ValidationError{ServerName: "ws", Message: "bad", Severity: SeverityWarning},
			want: `warning: server "ws": bad`,
		},
		{
			name: "field only",
			err:  &ValidationError{Field: "name", Message: "server name is required"},
			want: `error: field "name": server name is required`,
		},
		{
			name: "message only",
			err:  &ValidationError{Message: "server is nil"},
			want: "error: server is nil",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	if err := Join(nil); err != nil {
		t.Errorf("Join(nil) = %v, want nil", err)
	}

	warnOnly := []*ValidationError{{Message: "w", Severity: SeverityWarning}}
	if err := Join(warnOnly); err != nil {
		t.Errorf("Join(warnings) = %v, want nil", err)
	}

	errs := New().Validate(&mcp.Server{})
	err := Join(errs)
	if err == nil {
		t.Fatal("Join() = nil, want error")
	}
	if !errors.Is(err, ErrMissingServerName) {
		t.Errorf("joined error should match ErrMissingServerName: %v", err)
	}
}

func TestSeverity_String(t *testing.T) {
	if SeverityError.String() != "error" || SeverityWarning.String() != "warning" {
		t.Error("unexpected severity names")
	}
	if Severity(42).String() != "unknown" {
		t.Error("unknown severity should render as unknown")
	}
}
