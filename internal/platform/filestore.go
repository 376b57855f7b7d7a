package platform

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"slices"

	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/mcp"
	"github.com/thoreinstein/workspace/pkg/fileutil"
)

// Operation names recorded in ConfigAccessError.Op.
const (
	OpRead  = "read"
	OpWrite = "write"
	OpStat  = "stat"
)

// FileStoreConfig describes one client's configuration file.
type FileStoreConfig struct {
	Kind        Kind
	DisplayName string

	// Dir must exist before Put writes; Path's parent is created below it.
	Dir  string
	Path string

	// ServersKey is the top-level key holding the server map.
	ServersKey string

	Codec Codec

	// Encode converts a server to the client's native entry value.
	Encode func(*mcp.Server) any

	// Decode converts a generic entry read from disk back to a server.
	Decode func(name string, entry any) (*mcp.Server, error)

	// Perm is used when creating the file. Existing files keep their mode.
	Perm fs.FileMode
}

// FileStore implements Store for clients that keep MCP servers as a map
// under one top-level key of a single file.
type FileStore struct {
	cfg FileStoreConfig
}

// NewFileStore returns a Store for cfg.
func NewFileStore(cfg FileStoreConfig) *FileStore {
	if cfg.Perm == 0 {
		cfg.Perm = 0o600
	}
	return &FileStore{cfg: cfg}
}

func (s *FileStore) Kind() Kind          { return s.cfg.Kind }
func (s *FileStore) DisplayName() string { return s.cfg.DisplayName }
func (s *FileStore) ConfigDir() string   { return s.cfg.Dir }
func (s *FileStore) ConfigPath() string  { return s.cfg.Path }

// Get returns the named entry, or ErrServerNotFound.
func (s *FileStore) Get(name string) (*mcp.Server, error) {
	doc, _, err := s.load()
	if err != nil {
		return nil, err
	}
	servers, err := s.servers(doc)
	if err != nil {
		return nil, err
	}
	entry, ok := servers[name]
	if !ok {
		return nil, ErrServerNotFound
	}
	server, err := s.cfg.Decode(name, entry)
	if err != nil {
		return nil, s.accessErr(OpRead, ErrMalformedConfig, errors.Wrapf(err, "entry %q", name))
	}
	return server, nil
}

// Put adds or replaces the entry named server.Name. An entry that already
// decodes to the same value is left alone and nothing is written.
func (s *FileStore) Put(server *mcp.Server) (Change, error) {
	if err := s.checkDir(); err != nil {
		return ChangeNone, err
	}

	doc, _, err := s.load()
	if err != nil {
		return ChangeNone, err
	}
	servers, err := s.servers(doc)
	if err != nil {
		return ChangeNone, err
	}

	desired, err := Normalize(s.cfg.Codec, s.cfg.Encode(server))
	if err != nil {
		return ChangeNone, errors.Wrapf(err, "encoding %s entry", s.cfg.Kind)
	}

	change := ChangeAdded
	if existing, ok := servers[server.Name]; ok {
		if reflect.DeepEqual(existing, desired) {
			return ChangeNone, nil
		}
		change = ChangeUpdated
	}

	if servers == nil {
		servers = make(map[string]any)
	}
	servers[server.Name] = desired
	doc[s.cfg.ServersKey] = servers

	if err := s.save(doc); err != nil {
		return ChangeNone, err
	}
	return change, nil
}

// Delete removes the named entry. The servers container is dropped when it
// becomes empty so an install followed by an uninstall leaves an equivalent
// document.
func (s *FileStore) Delete(name string) (Change, error) {
	if _, err := os.Stat(s.cfg.Dir); errors.Is(err, fs.ErrNotExist) {
		return ChangeNone, nil
	}

	doc, exists, err := s.load()
	if err != nil || !exists {
		return ChangeNone, err
	}
	servers, err := s.servers(doc)
	if err != nil {
		return ChangeNone, err
	}
	if _, ok := servers[name]; !ok {
		return ChangeNone, nil
	}

	delete(servers, name)
	if len(servers) == 0 {
		delete(doc, s.cfg.ServersKey)
	} else {
		doc[s.cfg.ServersKey] = servers
	}

	if err := s.save(doc); err != nil {
		return ChangeNone, err
	}
	return ChangeRemoved, nil
}

// Names returns the sorted names of all configured servers. Entries are not
// decoded, so one with a malformed body is still listed.
func (s *FileStore) Names() ([]string, error) {
	doc, _, err := s.load()
	if err != nil {
		return nil, err
	}
	servers, err := s.servers(doc)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(servers))
	for n := range servers {
		names = append(names, n)
	}
	slices.Sort(names)
	return names, nil
}

func (s *FileStore) checkDir() error {
	info, err := os.Stat(s.cfg.Dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s.accessErrAt(OpStat, s.cfg.Dir, ErrConfigDirNotFound, nil)
	case errors.Is(err, fs.ErrPermission):
		return s.accessErrAt(OpStat, s.cfg.Dir, ErrPermissionDenied, err)
	case err != nil:
		return s.accessErrAt(OpStat, s.cfg.Dir, ErrConfigIO, err)
	case !info.IsDir():
		return s.accessErrAt(OpStat, s.cfg.Dir, ErrConfigDirNotFound, errors.New("not a directory"))
	}
	return nil
}

// load reads and decodes the file. A missing or blank file is an empty
// document; exists reports whether the file was present.
func (s *FileStore) load() (doc map[string]any, exists bool, err error) {
	data, err := fileutil.ReadFileWithLimit(s.cfg.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return map[string]any{}, false, nil
	case errors.Is(err, fs.ErrPermission):
		return nil, false, s.accessErr(OpRead, ErrPermissionDenied, err)
	case err != nil:
		return nil, false, s.accessErr(OpRead, ErrConfigIO, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, true, nil
	}
	if err := s.cfg.Codec.Unmarshal(data, &doc); err != nil {
		return nil, true, s.accessErr(OpRead, ErrMalformedConfig, err)
	}
	if doc == nil {
		// JSON "null"
		doc = map[string]any{}
	}
	return doc, true, nil
}

// servers returns the server map from doc, or nil when the key is absent.
func (s *FileStore) servers(doc map[string]any) (map[string]any, error) {
	v, ok := doc[s.cfg.ServersKey]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, s.accessErr(OpRead, ErrMalformedConfig,
			errors.Newf("%q is %T, want a %s table", s.cfg.ServersKey, v, s.cfg.Codec.Format()))
	}
	return m, nil
}

func (s *FileStore) save(doc map[string]any) error {
	data, err := s.cfg.Codec.Marshal(doc)
	if err != nil {
		return s.accessErr(OpWrite, ErrConfigIO, err)
	}

	if dir := filepath.Dir(s.cfg.Path); dir != s.cfg.Dir {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return s.classify(OpWrite, err)
		}
	}

	perm := fileutil.ModeOf(s.cfg.Path, s.cfg.Perm)
	// The rename below would replace a read-only file without complaint
	if _, err := os.Stat(s.cfg.Path); err == nil && perm&0o200 == 0 {
		return s.accessErr(OpWrite, ErrPermissionDenied, errors.Newf("file is read-only (mode %04o)", perm))
	}
	if err := fileutil.AtomicWriteFile(s.cfg.Path, data, perm); err != nil {
		return s.classify(OpWrite, err)
	}
	return nil
}

func (s *FileStore) classify(op string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return s.accessErr(op, ErrPermissionDenied, err)
	}
	return s.accessErr(op, ErrConfigIO, err)
}

func (s *FileStore) accessErr(op string, class, cause error) error {
	return s.accessErrAt(op, s.cfg.Path, class, cause)
}

func (s *FileStore) accessErrAt(op, path string, class, cause error) error {
	return newAccessError(s.cfg.Kind, op, path, class, cause)
}
