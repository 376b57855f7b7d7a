package mcp

import (
	"maps"
	"slices"
	"strings"
)

// DefaultServerName is the name under which the workspace server is registered
// in every client's configuration store.
const DefaultServerName = "workspace"

// PathPlaceholder is substituted with the absolute project path in
// configured command arguments and environment values.
const PathPlaceholder = "{path}"

// Server is the canonical MCP server registration written into client stores.
// Each client translates it into its own native shape.
type Server struct {
	// Name is the server's identifier, used as the map key in client stores.
	Name string `json:"name" mapstructure:"name"`

	// Command is the executable the client launches.
	Command string `json:"command" mapstructure:"command"`

	// Args are command-line arguments passed to Command.
	Args []string `json:"args,omitempty" mapstructure:"args"`

	// Env contains environment variables passed to the server process.
	Env map[string]string `json:"env,omitempty" mapstructure:"env"`
}

// DefaultServer returns the registration used when no override is configured.
// The client launches the workspace MCP server with uv from projectPath.
func DefaultServer(projectPath string) *Server {
	return &Server{
		Name:    DefaultServerName,
		Command: "uv",
		Args:    []string{"--directory", projectPath, "run", "-m", "wa.mcp"},
	}
}

// Clone returns a deep copy of s.
func (s *Server) Clone() *Server {
	if s == nil {
		return nil
	}
	return &Server{
		Name:    s.Name,
		Command: s.Command,
		Args:    slices.Clone(s.Args),
		Env:     maps.Clone(s.Env),
	}
}

// Expand returns a copy of s with PathPlaceholder replaced by projectPath
// in Args and Env values.
func (s *Server) Expand(projectPath string) *Server {
	out := s.Clone()
	for i, a := range out.Args {
		out.Args[i] = strings.ReplaceAll(a, PathPlaceholder, projectPath)
	}
	for k, v := range out.Env {
		out.Env[k] = strings.ReplaceAll(v, PathPlaceholder, projectPath)
	}
	return out
}

// Equal reports whether s and o describe the same registration.
// Nil and empty Args or Env are considered equal.
func (s *Server) Equal(o *Server) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Name != o.Name || s.Command != o.Command {
		return false
	}
	if len(s.Args) != len(o.Args) || (len(s.Args) > 0 && !slices.Equal(s.Args, o.Args)) {
		return false
	}
	if len(s.Env) != len(o.Env) || (len(s.Env) > 0 && !maps.Equal(s.Env, o.Env)) {
		return false
	}
	return true
}

// CommandLine renders the server invocation for display.
func (s *Server) CommandLine() string {
	if len(s.Args) == 0 {
		return s.Command
	}
	return s.Command + " " + strings.Join(s.Args, " ")
}
