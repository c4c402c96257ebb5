// Package snapshot maintains a private, lock-free copy of the Zotero database.
//
// Zotero holds its SQLite database open (and locked) while the
// application is running, so the source file is never opened directly.
// Instead a byte-for-byte copy is kept under the cache directory and
// refreshed whenever the source's modification time advances.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/atomic"
)

// SnapshotFile is the file name of the snapshot under the cache directory.
const SnapshotFile = "zotero.sqlite"

var (
	// ErrSourceNotFound indicates the configured source database is unreadable.
	ErrSourceNotFound = errors.New("source database not found")
	// ErrCopyFailed indicates the snapshot copy could not be written.
	ErrCopyFailed = errors.New("snapshot copy failed")
)

// Manager tracks the snapshot path and the source modification time of
// the last successful copy. It owns the snapshot file exclusively and
// never writes back to the source.
type Manager struct {
	source   string
	path     string
	copiedAt time.Time // source mtime at last copy, zero before first copy
}

// NewManager creates a manager copying source into cacheDir.
func NewManager(source, cacheDir string) *Manager {
	return &Manager{
		source: source,
		path:   filepath.Join(cacheDir, SnapshotFile),
	}
}

// Source returns the configured source database path.
func (m *Manager) Source() string { return m.source }

// Path returns the snapshot path. The file may not exist yet.
func (m *Manager) Path() string { return m.path }

// CopiedAt returns the source modification time recorded at the last
// successful copy, or the zero time if no copy has been made.
func (m *Manager) CopiedAt() time.Time { return m.copiedAt }

// Ensure returns the path of an up-to-date snapshot, copying the source
// if the snapshot is missing or the source has been modified since the
// last copy. No copy happens when the source mtime has not advanced.
func (m *Manager) Ensure() (string, error) {
	info, err := os.Stat(m.source)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, m.source)
	}

	if _, err := os.Stat(m.path); err == nil && !info.ModTime().After(m.copiedAt) {
		return m.path, nil
	}

	if err := m.copy(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCopyFailed, err)
	}
	m.copiedAt = info.ModTime()

	return m.path, nil
}

// copy writes a full copy of the source to the snapshot path. The write
// is atomic so a reader never observes a half-copied database.
func (m *Manager) copy() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return err
	}

	src, err := os.Open(m.source)
	if err != nil {
		return err
	}
	defer src.Close()

	return atomic.WriteFile(m.path, src)
}
