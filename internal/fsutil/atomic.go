// Package fsutil provides small filesystem helpers shared by the
// storage layer.
package fsutil

import (
	"bytes"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// WriteFileAtomic writes data to path via a temp file and rename so
// readers never observe a partial file, then applies perm.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Chmod(path, perm); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	return nil
}

// BestEffortBackup copies the current contents of path to path.bak
// before an overwrite. Failures are ignored; the backup only has to
// exist often enough to recover from a torn write.
func BestEffortBackup(path string, perm os.FileMode) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	_ = WriteFileAtomic(path+".bak", data, perm)
}
