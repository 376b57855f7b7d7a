package platform

import (
	"github.com/thoreinstein/workspace/internal/mcp"
)

// Change describes what a mutating Store call did to the file.
type Change int

const (
	// ChangeNone means the store was left untouched and nothing was written.
	ChangeNone Change = iota
	// ChangeAdded means a new entry was written.
	ChangeAdded
	// ChangeUpdated means an existing entry with different content was replaced.
	ChangeUpdated
	// ChangeRemoved means an entry was deleted.
	ChangeRemoved
)

func (c Change) String() string {
	switch c {
	case ChangeNone:
		return "unchanged"
	case ChangeAdded:
		return "added"
	case ChangeUpdated:
		return "updated"
	case ChangeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Store is a client's MCP server configuration.
//
// Put and Delete perform a full read-modify-write of the underlying file and
// must not write when the result would be unchanged. Callers serialize
// access across processes; a Store does no locking of its own.
type Store interface {
	// Kind returns the client this store belongs to.
	Kind() Kind

	// DisplayName is the human-readable client name.
	DisplayName() string

	// ConfigDir is the directory that must exist before Put will write.
	ConfigDir() string

	// ConfigPath is the file holding the server entries.
	ConfigPath() string

	// Get returns the named entry, or ErrServerNotFound.
	Get(name string) (*mcp.Server, error)

	// Put adds or replaces the entry named server.Name.
	Put(server *mcp.Server) (Change, error)

	// Delete removes the named entry. A missing file, directory, or entry
	// is ChangeNone with a nil error.
	Delete(name string) (Change, error)

	// Names lists the configured entries, sorted, without decoding them.
	Names() ([]string, error)
}

// Options are passed to a Factory when a Store is constructed.
type Options struct {
	Scope Scope

	// ProjectRoot is the absolute project directory; required for ScopeProject.
	ProjectRoot string

	// Home overrides the user's home directory. Empty means paths.Home().
	Home string
}

// Factory constructs the Store for one client.
type Factory func(Options) (Store, error)
