// Package storage persists the task forest as a single JSON snapshot
// on disk. Only the present state is ever written, never the undo
// history. Writes are atomic with a best-effort .bak aside; corrupt
// snapshots are recovered from the backup where possible and otherwise
// reset to an empty forest.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"grove/internal/fsutil"
	"grove/internal/task"
)

const (
	// snapshotFile is the well-known key the forest is stored under.
	snapshotFile = "tasks.json"

	dataDirPerm  os.FileMode = 0700
	dataFilePerm os.FileMode = 0600
)

// Store handles all snapshot file I/O for one data directory.
type Store struct {
	dataDir string
}

// New creates a Store rooted at dataDir, creating the directory and an
// empty snapshot if they do not exist yet.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	s := &Store{dataDir: dataDir}
	if _, err := os.Stat(s.path(snapshotFile)); os.IsNotExist(err) {
		if err := s.Save(task.Forest{}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// DataDir returns the path to the data directory.
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) path(filename string) string {
	return filepath.Join(s.dataDir, filename)
}

// Load reads the persisted forest. A missing snapshot yields an empty
// forest. A corrupt snapshot is recovered from the .bak copy when that
// parses, otherwise reset to empty; either way Load returns a usable
// forest together with an error describing what happened, so callers
// can log it and carry on.
func (s *Store) Load() (task.Forest, error) {
	path := s.path(snapshotFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return task.Forest{}, nil
		}
		return task.Forest{}, fmt.Errorf("read %s: %w", snapshotFile, err)
	}

	f, err := decodeForest(data)
	if err == nil {
		return f, nil
	}
	return s.recoverCorrupt(fmt.Errorf("parse %s: %w", snapshotFile, err))
}

func decodeForest(data []byte) (task.Forest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("snapshot is empty")
	}
	var f task.Forest
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.Normalize(), nil
}

func (s *Store) recoverCorrupt(cause error) (task.Forest, error) {
	path := s.path(snapshotFile)
	corruptPath := fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405"))

	// Try the backup first.
	if bakData, err := os.ReadFile(path + ".bak"); err == nil {
		if f, err := decodeForest(bakData); err == nil {
			_ = os.Rename(path, corruptPath)
			_ = s.Save(f)
			return f, fmt.Errorf("%s (recovered from %s.bak)", cause.Error(), snapshotFile)
		}
	}

	// No usable backup: preserve the broken file and reset.
	_ = os.Rename(path, corruptPath)
	_ = s.Save(task.Forest{})
	return task.Forest{}, fmt.Errorf("%s (reset to empty; original moved to %s)", cause.Error(), corruptPath)
}

// Save writes the forest snapshot atomically, keeping a best-effort
// backup of the previous contents.
func (s *Store) Save(f task.Forest) error {
	data, err := json.MarshalIndent(f.Normalize(), "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s: %w", snapshotFile, err)
	}

	path := s.path(snapshotFile)
	fsutil.BestEffortBackup(path, dataFilePerm)

	if err := fsutil.WriteFileAtomic(path, data, dataFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", snapshotFile, err)
	}
	return nil
}

// Export writes the current snapshot as an indented JSON array. The
// output is structurally identical to the persisted snapshot, so an
// exported file can be imported back as-is.
func (s *Store) Export(w io.Writer) error {
	f, err := s.Load()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize export: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}
