package fileutil

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFile is the advisory lock taken inside an output directory
const LockFile = ".phrasebook.lock"

// LockDir takes the advisory lock of dir without blocking. The caller
// releases it with Unlock.
func LockDir(dir string) (*flock.Flock, error) {
	lock := flock.New(filepath.Join(dir, LockFile))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", dir, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s is locked by another build", dir)
	}
	return lock, nil
}
