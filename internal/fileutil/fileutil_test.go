package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "lesson.csv")

	if err := WriteFileAtomic(path, []byte("first")); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second")); err != nil {
		t.Fatalf("WriteFileAtomic() overwrite error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.mp3")
	if Exists(file) {
		t.Error("Exists() = true before creation")
	}
	if err := os.WriteFile(file, []byte{0xFF}, 0o644); err != nil {
		t.Fatal(err)
	}
	if !Exists(file) {
		t.Error("Exists() = false after creation")
	}
	if Exists(dir) {
		t.Error("Exists() = true for a directory")
	}
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "build-20260501-183005")

	if PathExists(sub) {
		t.Error("PathExists() = true before creation")
	}
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if !PathExists(sub) {
		t.Error("PathExists() = false for an existing directory")
	}
}
