package claude

import (
	"github.com/thoreinstein/workspace/internal/mcp"
	"github.com/thoreinstein/workspace/internal/platform"
)

// DisplayName is the human-readable client name.
const DisplayName = "Claude Code"

// serversKey is the top-level key Claude Code keeps MCP servers under.
const serversKey = "mcpServers"

// MCPServer is a stdio server entry as Claude Code writes it.
type MCPServer struct {
	Type    string            `json:"type,omitempty"`
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// ToEntry converts a canonical server into Claude Code's entry shape.
func ToEntry(s *mcp.Server) *MCPServer {
	return &MCPServer{
		Type:    "stdio",
		Command: s.Command,
		Args:    s.Args,
		Env:     s.Env,
	}
}

// FromEntry converts an entry read from Claude Code back to a canonical server.
func FromEntry(name string, e *MCPServer) *mcp.Server {
	return &mcp.Server{
		Name:    name,
		Command: e.Command,
		Args:    e.Args,
		Env:     e.Env,
	}
}

// New returns the Claude Code store for opts.
func New(opts platform.Options) (*platform.FileStore, error) {
	p, err := NewPaths(opts)
	if err != nil {
		return nil, err
	}
	return newStore(p), nil
}

func newStore(p *Paths) *platform.FileStore {
	codec := platform.JSONCodec{}
	return platform.NewFileStore(platform.FileStoreConfig{
		Kind:        platform.KindClaudeCode,
		DisplayName: DisplayName,
		Dir:         p.ConfigDir(),
		Path:        p.MCPConfigPath(),
		ServersKey:  serversKey,
		Codec:       codec,
		Encode:      func(s *mcp.Server) any { return ToEntry(s) },
		Decode: func(name string, entry any) (*mcp.Server, error) {
			e, err := platform.Convert[MCPServer](codec, entry)
			if err != nil {
				return nil, err
			}
			return FromEntry(name, &e), nil
		},
		Perm: 0o600,
	})
}
