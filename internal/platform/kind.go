package platform

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/workspace/internal/errors"
)

// Kind identifies a supported coding-agent client.
type Kind string

// Supported client kinds.
const (
	KindClaudeCode Kind = "claude-code"
	KindCodex      Kind = "codex"
	KindGemini     Kind = "gemini-cli"
)

// DefaultKind is used when no client is specified.
const DefaultKind = KindClaudeCode

// Kinds returns all supported client kinds in display order.
func Kinds() []Kind {
	return []Kind{KindClaudeCode, KindCodex, KindGemini}
}

func (k Kind) String() string { return string(k) }

// Valid reports whether k is a supported client kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

// ParseKind converts a --client value into a Kind.
// Matching is exact; anything else returns an *UnknownClientError.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", &UnknownClientError{Name: s}
	}
	return k, nil
}

// KindNames returns the supported kinds as strings, for flag help and completion.
func KindNames() []string {
	kinds := Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

// UnknownClientError reports a client name that is not a supported Kind.
type UnknownClientError struct {
	Name string
}

func (e *UnknownClientError) Error() string {
	if e.Name == "" {
		return "no client provided"
	}
	return fmt.Sprintf("unknown client %q (valid: %s)", e.Name, strings.Join(KindNames(), ", "))
}

// Scope selects between a client's user-level and project-level store.
type Scope string

const (
	ScopeUser    Scope = "user"
	ScopeProject Scope = "project"
)

// ParseScope converts a --scope value into a Scope. Empty means ScopeUser.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeUser:
		return ScopeUser, nil
	case ScopeProject:
		return ScopeProject, nil
	default:
		return "", errors.Newf("invalid scope %q (valid: user, project)", s)
	}
}
