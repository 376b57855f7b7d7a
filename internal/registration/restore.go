package registration

import (
	"context"
	"fmt"
	"slices"

	"github.com/thoreinstein/workspace/internal/errors"
	"github.com/thoreinstein/workspace/internal/logging"
	"github.com/thoreinstein/workspace/internal/platform"
)

// Restore writes a backup of kind's store back in place, holding the same
// lock as Run. An empty id selects the newest backup.
func (d *Dispatcher) Restore(ctx context.Context, kind platform.Kind, id string) (*Result, error) {
	res := &Result{Client: kind, Action: ActionRestore}
	err := d.restore(ctx, res, id)
	if err != nil {
		res.Success = false
		res.Message = err.Error()
		return res, err
	}
	res.Success = true
	return res, nil
}

func (d *Dispatcher) restore(ctx context.Context, res *Result, id string) error {
	log := d.logger
	if log == nil {
		log = logging.FromContext(ctx)
	}

	if _, err := d.table.Lookup(res.Client); err != nil {
		return err
	}
	if d.backups == nil {
		return ErrBackupsDisabled
	}

	client := string(res.Client)
	if id == "" {
		manifests, err := d.backups.List(client)
		if err != nil {
			return errors.Wrapf(err, "%s", client)
		}
		id = manifests[0].ID
	}
	mf, err := d.backups.Get(client, id)
	if err != nil {
		return err
	}
	res.BackupID = mf.ID

	targets := make([]string, 0, len(mf.Files))
	for _, f := range mf.Files {
		targets = append(targets, f.OriginalPath)
	}
	slices.Sort(targets)
	if len(targets) > 0 {
		res.ConfigPath = targets[0]
	}
	for _, target := range targets {
		unlock, err := d.lock(ctx, target)
		if err != nil {
			return err
		}
		defer unlock()
	}

	if _, err := d.backups.Restore(client, mf.ID); err != nil {
		return err
	}
	res.Changed = len(targets) > 0
	res.Message = fmt.Sprintf("Restored %s from backup %s", client, mf.ID)
	log.Info("backup restored", "client", client, "backup_id", mf.ID, "files", len(targets))
	return nil
}
