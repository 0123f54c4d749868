// Package backup snapshots the sqlite notification history before
// destructive maintenance (pruning, restores).
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	// MaxSnapshots is the number of history snapshots kept on disk
	MaxSnapshots = 7
	// SnapshotDirName is the directory next to the history database
	SnapshotDirName = "backups"

	snapshotPrefix  = "history-"
	snapshotSuffix  = ".db"
	timestampLayout = "20060102-150405"
)

// SnapshotInfo describes one snapshot file.
type SnapshotInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots and restores one sqlite history database.
type Manager struct {
	dbPath      string
	snapshotDir string
}

// NewManager creates a manager for the history database at dbPath.
// Snapshots live in a backups/ directory next to it.
func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:      dbPath,
		snapshotDir: filepath.Join(filepath.Dir(dbPath), SnapshotDirName),
	}
}

// SnapshotDir returns the snapshot directory path.
func (m *Manager) SnapshotDir() string {
	return m.snapshotDir
}

// Create writes a new snapshot and rotates old ones. It returns the path of
// the snapshot file.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.snapshotDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	if _, err := os.Stat(m.dbPath); os.IsNotExist(err) {
		return "", fmt.Errorf("history database does not exist: %s", m.dbPath)
	}

	name := fmt.Sprintf("%s%s%s", snapshotPrefix, time.Now().Format(timestampLayout), snapshotSuffix)
	dest := filepath.Join(m.snapshotDir, name)

	// Second-precision timestamps collide only on rapid repeat runs
	counter := 1
	for {
		if _, err := os.Stat(dest); os.IsNotExist(err) {
			break
		}
		dest = filepath.Join(m.snapshotDir, fmt.Sprintf("%s%s-%d%s",
			snapshotPrefix, time.Now().Format(timestampLayout), counter, snapshotSuffix))
		counter++
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique snapshot filename")
		}
	}

	if err := m.copyDatabase(dest); err != nil {
		return "", fmt.Errorf("failed to snapshot history database: %w", err)
	}

	if err := m.rotate(); err != nil {
		// A failed rotation never invalidates the snapshot just written
		fmt.Fprintf(os.Stderr, "Warning: failed to rotate old snapshots: %v\n", err)
	}

	return dest, nil
}

// copyDatabase writes a clean copy of the database via VACUUM INTO, falling
// back to a plain file copy where the sqlite build lacks it.
func (m *Manager) copyDatabase(dest string) error {
	src, err := sql.Open("sqlite", m.dbPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer src.Close()

	var count int
	if err := src.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("history database appears to be corrupted: %w", err)
	}

	if _, err := src.Exec("VACUUM INTO ?", dest); err != nil {
		src.Close()
		return copyFile(m.dbPath, dest)
	}
	return nil
}

// List returns the available snapshots, newest first.
func (m *Manager) List() ([]SnapshotInfo, error) {
	if _, err := os.Stat(m.snapshotDir); os.IsNotExist(err) {
		return []SnapshotInfo{}, nil
	}

	entries, err := os.ReadDir(m.snapshotDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	var snapshots []SnapshotInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotSuffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, snapshotPrefix), snapshotSuffix)
		// Strip the collision counter if present
		if parts := strings.Split(stamp, "-"); len(parts) == 3 {
			stamp = strings.Join(parts[:2], "-")
		}

		ts, err := time.Parse(timestampLayout, stamp)
		if err != nil {
			continue
		}

		path := filepath.Join(m.snapshotDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		snapshots = append(snapshots, SnapshotInfo{
			Path:      path,
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Timestamp.After(snapshots[j].Timestamp)
	})

	return snapshots, nil
}

func (m *Manager) rotate() error {
	snapshots, err := m.List()
	if err != nil {
		return err
	}

	for i := MaxSnapshots; i < len(snapshots); i++ {
		if err := os.Remove(snapshots[i].Path); err != nil {
			return fmt.Errorf("failed to remove old snapshot %s: %w", snapshots[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the history database with the given snapshot. The current
// database is snapshotted first so a bad restore can be undone.
func (m *Manager) Restore(snapshotPath string) error {
	if _, err := os.Stat(snapshotPath); os.IsNotExist(err) {
		return fmt.Errorf("snapshot does not exist: %s", snapshotPath)
	}

	if err := verifySnapshot(snapshotPath); err != nil {
		return fmt.Errorf("snapshot is corrupted or invalid: %w", err)
	}

	if _, err := os.Stat(m.dbPath); err == nil {
		if _, err := m.Create(); err != nil {
			return fmt.Errorf("failed to snapshot current database before restore: %w", err)
		}
	}

	// Atomic swap through a temp file
	tempPath := m.dbPath + ".restore.tmp"
	if err := copyFile(snapshotPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy snapshot: %w", err)
	}
	if err := os.Rename(tempPath, m.dbPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to restore history database: %w", err)
	}

	return nil
}

func verifySnapshot(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}
