package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"sidekick/internal/backup"
)

// BackupCreateCmd snapshots the sqlite notification history.
type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr, err := historyBackupManager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return err
	}
	fmt.Printf("✓ History snapshot created: %s\n", filepath.Base(path))
	return nil
}

// BackupListCmd lists the available history snapshots.
type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr, err := historyBackupManager(ctx)
	if err != nil {
		return err
	}
	snapshots, err := mgr.List()
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		fmt.Println("No history snapshots yet.")
		return nil
	}
	for _, s := range snapshots {
		fmt.Printf("%s  %8d bytes  %s\n", s.Timestamp.Format("2006-01-02 15:04:05"), s.Size, filepath.Base(s.Path))
	}
	return nil
}

// BackupRestoreCmd restores the history database from a snapshot.
type BackupRestoreCmd struct {
	Path string `arg:"" help:"Snapshot file to restore." type:"path"`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr, err := historyBackupManager(ctx)
	if err != nil {
		return err
	}
	if err := mgr.Restore(c.Path); err != nil {
		return err
	}
	fmt.Println("✓ History database restored")
	return nil
}

func historyBackupManager(ctx *Context) (*backup.Manager, error) {
	if ctx.Config.Storage.Driver == "postgres" {
		return nil, errors.New("history snapshots only apply to the sqlite driver; use your database's own backup tooling for postgres")
	}
	return backup.NewManager(ctx.Config.Storage.Path), nil
}
