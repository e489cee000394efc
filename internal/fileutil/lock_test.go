package fileutil

import (
	"strings"
	"testing"
)

func TestLockDir(t *testing.T) {
	dir := t.TempDir()

	lock, err := LockDir(dir)
	if err != nil {
		t.Fatalf("LockDir() error = %v", err)
	}

	if _, err := LockDir(dir); err == nil || !strings.Contains(err.Error(), "locked") {
		t.Errorf("second LockDir() error = %v, want a locked error", err)
	}

	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}

	again, err := LockDir(dir)
	if err != nil {
		t.Fatalf("LockDir() after Unlock error = %v", err)
	}
	again.Unlock()
}

func TestLockDirMissingDirectory(t *testing.T) {
	if _, err := LockDir("/nonexistent/phrasebook/build"); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
