// Package archive moves a build directory aside so the next build starts
// from scratch.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"codeberg.org/awtza/phrasebook/internal/fileutil"
)

// TimestampLayout is appended to archived directory names
const TimestampLayout = "20060102-150405"

// ArchiveOutput moves dir to <parent>/archive/<name>-<timestamp> and returns
// the new path. It refuses to touch a directory a build currently holds.
func ArchiveOutput(dir string, now func() time.Time) (string, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("output directory does not exist: %s", dir)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat output directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("output path is not a directory: %s", dir)
	}

	lock, err := fileutil.LockDir(dir)
	if err != nil {
		return "", err
	}
	defer lock.Unlock()

	archiveDir := filepath.Join(filepath.Dir(filepath.Clean(dir)), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	if now == nil {
		now = time.Now
	}
	base := fmt.Sprintf("%s-%s", filepath.Base(filepath.Clean(dir)), now().Format(TimestampLayout))
	archivePath := filepath.Join(archiveDir, base)

	// Same-second archives get a counter
	for n := 2; fileutil.PathExists(archivePath); n++ {
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%d", base, n))
	}

	if err := os.Rename(dir, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive output directory: %w", err)
	}
	return archivePath, nil
}
