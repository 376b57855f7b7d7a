package doctor

import (
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strings"

	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/mcp"
	"github.com/thoreinstein/workspace/internal/mcp/validator"
	"github.com/thoreinstein/workspace/internal/platform"
)

// StoreCheck reads a client store and reports whether the named server is
// registered in it.
type StoreCheck struct {
	store platform.Store
	name  string
}

var _ Check = (*StoreCheck)(nil)

// NewStoreCheck creates a check of store for the server called name.
func NewStoreCheck(store platform.Store, name string) *StoreCheck {
	return &StoreCheck{store: store, name: name}
}

func (c *StoreCheck) Name() string { return "store" }

func (c *StoreCheck) Run() *CheckResult {
	res := &CheckResult{
		Name:   c.Name(),
		Client: string(c.store.Kind()),
		Path:   c.store.ConfigPath(),
	}

	if _, err := os.Stat(c.store.ConfigDir()); errors.Is(err, fs.ErrNotExist) {
		res.Status = SeverityInfo
		res.Message = c.store.DisplayName() + " is not installed"
		return res
	}

	_, err := c.store.Get(c.name)
	switch {
	case err == nil:
		res.Status = SeverityPass
		res.Message = fmt.Sprintf("%q is registered", c.name)
	case errors.Is(err, platform.ErrServerNotFound):
		res.Status = SeverityInfo
		res.Message = fmt.Sprintf("%q is not registered", c.name)
		res.FixHint = "workspace mcp install --client " + string(c.store.Kind())
	case errors.Is(err, platform.ErrMalformedConfig):
		res.Status = SeverityError
		res.Message = err.Error()
		res.FixHint = "Fix the file by hand or run: workspace backup restore --client " + string(c.store.Kind())
	default:
		res.Status = SeverityError
		res.Message = err.Error()
	}
	return res
}

// PermissionCheck reports client stores writable by group or others.
type PermissionCheck struct {
	store platform.Store
	mode  fs.FileMode
}

var (
	_ Check = (*PermissionCheck)(nil)
	_ Fixer = (*PermissionCheck)(nil)
)

// NewPermissionCheck creates a permission check of store's file.
func NewPermissionCheck(store platform.Store) *PermissionCheck {
	return &PermissionCheck{store: store}
}

func (c *PermissionCheck) Name() string { return "permissions" }

func (c *PermissionCheck) Run() *CheckResult {
	path := c.store.ConfigPath()
	res := &CheckResult{Name: c.Name(), Client: string(c.store.Kind()), Path: path}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		res.Status = SeverityPass
		res.Message = "no configuration file"
		return res
	case err != nil:
		res.Status = SeverityError
		res.Message = fmt.Sprintf("cannot stat: %v", err)
		return res
	}

	c.mode = info.Mode().Perm()
	// Unix permission bits are not meaningful on Windows
	if runtime.GOOS == "windows" || c.mode&0o022 == 0 {
		res.Status = SeverityPass
		res.Message = fmt.Sprintf("mode %04o", c.mode)
		return res
	}

	res.Status = SeverityWarning
	res.Message = fmt.Sprintf("mode %04o lets other users change the servers %s launches", c.mode, c.store.DisplayName())
	res.Fixable = true
	res.FixHint = fmt.Sprintf("chmod %04o %s", c.mode&^0o022, path)
	return res
}

// Fix removes group and other write permission.
func (c *PermissionCheck) Fix() (*FixResult, error) {
	path := c.store.ConfigPath()
	target := c.mode &^ 0o022
	if err := os.Chmod(path, target); err != nil {
		return nil, errors.Wrapf(err, "chmod %04o %s", target, path)
	}
	return &FixResult{Path: path, Description: fmt.Sprintf("chmod %04o", target)}, nil
}

// ServerCheck validates the server entry that install would write,
// including whether its command resolves on PATH.
type ServerCheck struct {
	server    *mcp.Server
	validator *validator.Validator
}

var _ Check = (*ServerCheck)(nil)

// NewServerCheck creates a check of server. Pass validator options to
// control command resolution.
func NewServerCheck(server *mcp.Server, opts ...validator.Option) *ServerCheck {
	if len(opts) == 0 {
		opts = []validator.Option{validator.WithCommandCheck()}
	}
	return &ServerCheck{server: server, validator: validator.New(opts...)}
}

func (c *ServerCheck) Name() string { return "server" }

func (c *ServerCheck) Run() *CheckResult {
	res := &CheckResult{Name: c.Name()}
	issues := c.validator.Validate(c.server)

	var msgs []string
	for _, i := range issues {
		msgs = append(msgs, i.Message)
	}

	switch {
	case validator.HasErrors(issues):
		res.Status = SeverityError
	case len(issues) > 0:
		res.Status = SeverityWarning
	default:
		res.Status = SeverityPass
		res.Message = c.server.CommandLine()
		return res
	}
	res.Message = strings.Join(msgs, "; ")
	res.FixHint = "Set server.command in the workspace config file"
	return res
}
