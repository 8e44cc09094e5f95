package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// DiskArchive keeps the analysis archive in a local directory. Used when no
// storage account is configured, typically during development.
type DiskArchive struct {
	dir string
}

var _ ArchiveInterface = (*DiskArchive)(nil)

// NewDiskArchive creates the directory if needed and returns a disk-backed
// archive.
func NewDiskArchive(dir string) (*DiskArchive, error) {
	if dir == "" {
		return nil, fmt.Errorf("archive directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory %s: %w", dir, err)
	}
	return &DiskArchive{dir: dir}, nil
}

// Store writes one analysis document. Filenames are flattened to their base
// so callers cannot escape the archive directory.
func (a *DiskArchive) Store(filename string, data []byte) error {
	path := filepath.Join(a.dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logrus.Debugf("Archived %s to %s", filename, a.dir)
	return nil
}

// Retrieve reads one archived document.
func (a *DiskArchive) Retrieve(filename string) ([]byte, error) {
	path := filepath.Join(a.dir, filepath.Base(filename))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// List returns the names of archived documents with the given prefix.
func (a *DiskArchive) List(prefix string) ([]string, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list archive directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), prefix) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Delete removes one archived document.
func (a *DiskArchive) Delete(filename string) error {
	path := filepath.Join(a.dir, filepath.Base(filename))
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	return nil
}
