package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

const (
	backupTimeLayout = "20060102_150405"
	backupMetaExt    = ".meta.toml"
)

// BackupManager copies data files aside before they are overwritten
type BackupManager struct {
	backupDir string
	sessionID string
	logger    *log.Logger
}

// backupMeta is the sidecar written next to each backup
type backupMeta struct {
	Original string    `toml:"original"`
	Created  time.Time `toml:"created"`
	Session  string    `toml:"session"`
}

// BackupMetadata holds parsed information about a backup file
type BackupMetadata struct {
	FilePath     string    // Full path to backup file
	Timestamp    time.Time // Time the backup was taken
	SessionID    string    // 8-character session ID
	OriginalFile string    // Absolute path of the file that was backed up
}

// NewBackupManager creates a backup manager writing into dir, or into
// DefaultBackupDir when dir is empty. A nil logger discards log output.
func NewBackupManager(dir string, logger *log.Logger) (*BackupManager, error) {
	if dir == "" {
		dir = DefaultBackupDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &BackupManager{
		backupDir: dir,
		sessionID: uuid.NewString()[:8],
		logger:    logger,
	}, nil
}

// SessionID returns the id stamped on backups from this manager
func (bm *BackupManager) SessionID() string {
	return bm.sessionID
}

// CreateBackup copies the file at originalPath into the backup directory.
// A missing original is not an error; there is nothing to back up yet.
func (bm *BackupManager) CreateBackup(originalPath string) (string, error) {
	data, err := os.ReadFile(originalPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read file for backup: %w", err)
	}

	absPath, err := filepath.Abs(originalPath)
	if err != nil {
		absPath = originalPath
	}

	now := time.Now()
	backupPath := filepath.Join(bm.backupDir, bm.generateBackupFilename(now, filepath.Ext(originalPath)))
	for n := 1; fileExists(backupPath); n++ {
		backupPath = filepath.Join(bm.backupDir, bm.generateBackupFilename(now, fmt.Sprintf("-%d%s", n, filepath.Ext(originalPath))))
	}
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup file: %w", err)
	}

	meta, err := toml.Marshal(backupMeta{Original: absPath, Created: now, Session: bm.sessionID})
	if err != nil {
		return "", fmt.Errorf("failed to marshal backup metadata: %w", err)
	}
	if err := os.WriteFile(backupPath+backupMetaExt, meta, 0o644); err != nil {
		return "", fmt.Errorf("failed to write backup metadata: %w", err)
	}

	bm.logger.Debug("created backup", "original", absPath, "backup", backupPath)
	return backupPath, nil
}

// generateBackupFilename creates a filename in the format: YYYYMMDD_HHMMSS_<sessionID><ext>
func (bm *BackupManager) generateBackupFilename(now time.Time, ext string) string {
	return fmt.Sprintf("%s_%s%s", now.Format(backupTimeLayout), bm.sessionID, ext)
}

// DefaultBackupDir returns the default backup directory
func DefaultBackupDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "favtree", "backups")
	}
	return filepath.Join(homeDir, ".local", "share", "favtree", "backups")
}

// FindBackupsForFile returns all backups of the given file, oldest first. An
// empty path returns every backup.
func (bm *BackupManager) FindBackupsForFile(originalFilePath string) ([]BackupMetadata, error) {
	entries, err := os.ReadDir(bm.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var searchPath string
	if originalFilePath != "" {
		absPath, err := filepath.Abs(originalFilePath)
		if err != nil {
			searchPath = filepath.Clean(originalFilePath)
		} else {
			searchPath = filepath.Clean(absPath)
		}
	}

	var backups []BackupMetadata
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), backupMetaExt) {
			continue
		}

		metadata, err := bm.readMetadata(filepath.Join(bm.backupDir, entry.Name()))
		if err != nil {
			bm.logger.Debug("skipping unreadable backup metadata", "file", entry.Name(), "err", err)
			continue
		}

		if searchPath != "" && filepath.Clean(metadata.OriginalFile) != searchPath {
			continue
		}
		backups = append(backups, metadata)
	}

	sortBackupsByTimestamp(backups)
	return backups, nil
}

func (bm *BackupManager) readMetadata(metaPath string) (BackupMetadata, error) {
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return BackupMetadata{}, err
	}

	var meta backupMeta
	if err := toml.Unmarshal(data, &meta); err != nil {
		return BackupMetadata{}, fmt.Errorf("invalid backup metadata: %w", err)
	}

	return BackupMetadata{
		FilePath:     strings.TrimSuffix(metaPath, backupMetaExt),
		Timestamp:    meta.Created,
		SessionID:    meta.Session,
		OriginalFile: meta.Original,
	}, nil
}

// sortBackupsByTimestamp sorts backups chronologically (oldest first)
func sortBackupsByTimestamp(backups []BackupMetadata) {
	slices.SortFunc(backups, func(a, b BackupMetadata) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
}
