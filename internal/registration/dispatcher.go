package registration

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/gofrs/flock"

	"github.com/thoreinstein/workspace/internal/backup"
	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/logging"
	"github.com/thoreinstein/workspace/internal/mcp"
	"github.com/thoreinstein/workspace/internal/mcp/validator"
	"github.com/thoreinstein/workspace/internal/paths"
	"github.com/thoreinstein/workspace/internal/platform"
)

// Action is the operation applied to a client store.
type Action string

const (
	ActionInstall   Action = "install"
	ActionUninstall Action = "uninstall"

	// ActionRestore is reported by Restore; Run rejects it.
	ActionRestore Action = "restore"
)

// DefaultLockTimeout bounds lock acquisition when no timeout is configured.
const DefaultLockTimeout = 5 * time.Second

// lockRetry is the delay between lock attempts.
const lockRetry = 50 * time.Millisecond

// Result is the outcome of one Run.
type Result struct {
	Client  platform.Kind
	Action  Action
	Success bool
	Message string

	// Changed reports whether the client store was written.
	Changed bool

	ConfigPath string

	// BackupID names the backup taken before the write, if any.
	BackupID string

	// AgentPath is set when the agent file was handled.
	AgentPath string
}

// Dispatcher applies registration actions to client stores.
type Dispatcher struct {
	table        *platform.Registry
	storeOpts    platform.Options
	server       *mcp.Server
	backups      *backup.Manager
	lockDir      string
	lockTimeout  time.Duration
	strict       bool
	includeAgent bool
	logger       *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTable replaces the dispatch table.
func WithTable(r *platform.Registry) Option {
	return func(d *Dispatcher) { d.table = r }
}

// WithStoreOptions sets the scope, project root, and home passed to factories.
func WithStoreOptions(opts platform.Options) Option {
	return func(d *Dispatcher) { d.storeOpts = opts }
}

// WithServer sets the entry written on install. Only its name is used on
// uninstall.
func WithServer(s *mcp.Server) Option {
	return func(d *Dispatcher) { d.server = s }
}

// WithBackups enables backups before writes. A nil manager disables them.
func WithBackups(m *backup.Manager) Option {
	return func(d *Dispatcher) { d.backups = m }
}

// WithLockDir sets the directory holding lock files.
func WithLockDir(dir string) Option {
	return func(d *Dispatcher) { d.lockDir = dir }
}

// WithLockTimeout bounds how long Run waits for the store lock.
func WithLockTimeout(t time.Duration) Option {
	return func(d *Dispatcher) {
		if t > 0 {
			d.lockTimeout = t
		}
	}
}

// WithStrict turns no-op installs and uninstalls into errors.
func WithStrict(strict bool) Option {
	return func(d *Dispatcher) { d.strict = strict }
}

// WithAgent also installs or removes the Claude Code agent file.
func WithAgent(include bool) Option {
	return func(d *Dispatcher) { d.includeAgent = include }
}

// WithLogger sets the logger. The default is taken from the Run context.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// New creates a Dispatcher over NewTable with the default server entry for
// the project root.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		lockDir:     paths.LockDir(),
		lockTimeout: DefaultLockTimeout,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.table == nil {
		d.table = NewTable()
	}
	if d.server == nil {
		d.server = mcp.DefaultServer(d.storeOpts.ProjectRoot)
	}
	return d
}

// Run applies action to the store of kind. The returned Result is never nil;
// on failure Success is false and Message holds the error text.
func (d *Dispatcher) Run(ctx context.Context, kind platform.Kind, action Action) (*Result, error) {
	res := &Result{Client: kind, Action: action}
	err := d.run(ctx, res)
	if err != nil {
		res.Success = false
		res.Message = err.Error()
		return res, err
	}
	res.Success = true
	return res, nil
}

func (d *Dispatcher) run(ctx context.Context, res *Result) error {
	log := d.logger
	if log == nil {
		log = logging.FromContext(ctx)
	}

	// Resolved before touching the filesystem
	factory, err := d.table.Lookup(res.Client)
	if err != nil {
		return err
	}
	if res.Action != ActionInstall && res.Action != ActionUninstall {
		return errors.Wrapf(ErrUnknownAction, "%q", res.Action)
	}
	if res.Action == ActionInstall {
		if err := validator.Join(validator.New().Validate(d.server)); err != nil {
			return errors.Wrap(err, "invalid server entry")
		}
	}

	store, err := factory(d.storeOpts)
	if err != nil {
		return errors.Wrapf(err, "opening %s store", res.Client)
	}
	res.ConfigPath = store.ConfigPath()
	log = log.With("client", string(res.Client), "path", res.ConfigPath)

	unlock, err := d.lock(ctx, store.ConfigPath())
	if err != nil {
		return err
	}
	defer unlock()

	var change platform.Change
	if res.Action == ActionInstall {
		change, err = d.install(store, res, log)
	} else {
		change, err = d.uninstall(store, res, log)
	}
	if err != nil {
		return err
	}
	res.Changed = change != platform.ChangeNone
	res.Message = message(store, d.server.Name, res.Action, change)
	log.Info("registration applied", "action", string(res.Action), "change", change.String())

	if d.includeAgent {
		if res.Client != platform.KindClaudeCode {
			log.Warn("agent file is only supported for claude-code; skipping")
			return nil
		}
		path, changed, err := applyAgent(d.storeOpts.ProjectRoot, res.Action)
		res.AgentPath = path
		if err != nil {
			return err
		}
		log.Debug("agent file handled", "agent_path", path, "changed", changed)
	}
	return nil
}

func (d *Dispatcher) install(store platform.Store, res *Result, log *slog.Logger) (platform.Change, error) {
	existing, err := store.Get(d.server.Name)
	switch {
	case err == nil:
		if existing.Equal(d.server) {
			if d.strict {
				return platform.ChangeNone, &AlreadyRegisteredError{Client: res.Client, Name: d.server.Name, Path: res.ConfigPath}
			}
			log.Debug("entry already registered")
			return platform.ChangeNone, nil
		}
	case errors.Is(err, platform.ErrServerNotFound):
	default:
		return platform.ChangeNone, err
	}

	if err := d.backup(store, res, log); err != nil {
		return platform.ChangeNone, err
	}
	log.Debug("writing entry", "command", d.server.CommandLine(), "env", logging.MaskEnv(d.server.Env))
	return store.Put(d.server)
}

func (d *Dispatcher) uninstall(store platform.Store, res *Result, log *slog.Logger) (platform.Change, error) {
	// An entry is removed by name even when its body no longer decodes
	names, err := store.Names()
	if err != nil {
		return platform.ChangeNone, err
	}
	if !slices.Contains(names, d.server.Name) {
		if d.strict {
			return platform.ChangeNone, &NotRegisteredError{Client: res.Client, Name: d.server.Name, Path: res.ConfigPath}
		}
		log.Debug("entry not registered")
		return platform.ChangeNone, nil
	}

	if err := d.backup(store, res, log); err != nil {
		return platform.ChangeNone, err
	}
	return store.Delete(d.server.Name)
}

// backup snapshots the store file. A store that does not exist yet has
// nothing to back up.
func (d *Dispatcher) backup(store platform.Store, res *Result, log *slog.Logger) error {
	if d.backups == nil {
		return nil
	}
	manifest, err := d.backups.Backup(string(res.Client), store.ConfigPath())
	if errors.Is(err, backup.ErrNothingToBackup) {
		return nil
	}
	if err != nil && manifest == nil {
		return errors.Wrap(err, "backing up client configuration")
	}
	if err != nil {
		// The snapshot exists; only pruning failed
		log.Warn("pruning backups failed", "error", err)
	}
	res.BackupID = manifest.ID
	log.Debug("backup created", "backup_id", manifest.ID)
	return nil
}

// lock takes the advisory lock for target, retrying until the lock timeout
// or ctx expires.
func (d *Dispatcher) lock(ctx context.Context, target string) (func(), error) {
	if err := paths.EnsureDir(d.lockDir, 0); err != nil {
		return nil, errors.Wrap(err, "creating lock directory")
	}

	lockCtx, cancel := context.WithTimeout(ctx, d.lockTimeout)
	defer cancel()

	fl := flock.New(paths.LockFile(d.lockDir, target))
	ok, err := fl.TryLockContext(lockCtx, lockRetry)
	if err != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		return nil, errors.Wrapf(ErrLockTimeout, "after %s", d.lockTimeout)
	}
	if err != nil {
		return nil, errors.Wrap(err, "acquiring configuration lock")
	}
	if !ok {
		return nil, errors.Wrapf(ErrLockTimeout, "after %s", d.lockTimeout)
	}
	return func() { _ = fl.Unlock() }, nil
}

func message(store platform.Store, name string, action Action, change platform.Change) string {
	client := store.DisplayName()
	switch change {
	case platform.ChangeAdded:
		return fmt.Sprintf("Registered %q with %s", name, client)
	case platform.ChangeUpdated:
		return fmt.Sprintf("Updated %q in %s", name, client)
	case platform.ChangeRemoved:
		return fmt.Sprintf("Removed %q from %s", name, client)
	}
	if action == ActionInstall {
		return fmt.Sprintf("%q is already registered with %s", name, client)
	}
	return fmt.Sprintf("%q is not registered with %s", name, client)
}
