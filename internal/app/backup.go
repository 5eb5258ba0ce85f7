package app

import (
	"context"
	"fmt"

	"github.com/badjano/favtree/internal/storage"
)

// Backups lists the backups of the favourites file, oldest first
func (a *App) Backups() ([]storage.BackupMetadata, error) {
	if a.backups == nil {
		return nil, fmt.Errorf("backups are disabled")
	}
	return a.backups.FindBackupsForFile(a.store.Path())
}

// RestoreBackup replaces the model with the content of a backup. The
// favourites file itself changes on the next Save.
func (a *App) RestoreBackup(ctx context.Context, backup storage.BackupMetadata) error {
	format, err := storage.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}
	if format == storage.FormatAuto {
		format = storage.DetectFormat(a.store.Path())
	}

	store, err := storage.Open(backup.FilePath, format)
	if err != nil {
		return err
	}
	if !store.Exists() {
		return fmt.Errorf("backup %s no longer exists", backup.FilePath)
	}

	elements, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}
	if err := a.replaceModel(elements); err != nil {
		return err
	}

	a.logger.Info("restored backup", "backup", backup.FilePath, "taken", backup.Timestamp)
	return nil
}
