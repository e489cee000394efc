package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// GreetingsJSON is the two-sentence lesson used across package tests
const GreetingsJSON = `{
  "id": "greetings",
  "title": "Salutations",
  "title_zh": "问候",
  "description_zh": "日常问候语",
  "sentences": [
    {"fr": "Bonjour !", "zh": "你好！"},
    {"fr": "Salut !", "zh": "嗨！"}
  ]
}`

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateLessonDirectory creates a lessons directory holding the given
// files, keyed by file name
func CreateLessonDirectory(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "lessons")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create lessons directory: %v", err)
	}
	for name, content := range files {
		CreateTestFile(t, filepath.Join(dir, name), []byte(content))
	}
	return dir
}

// ReadFile returns the content of path, failing the test if it is missing
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContent checks if a file has expected content
func AssertFileContent(t *testing.T, path string, expected []byte) {
	t.Helper()

	actual := ReadFile(t, path)
	if actual != string(expected) {
		t.Errorf("File content mismatch in %s\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	if !strings.Contains(ReadFile(t, path), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}

// AssertFileNotContains checks that a file does not contain a substring
func AssertFileNotContains(t *testing.T, path string, substring string) {
	t.Helper()

	if strings.Contains(ReadFile(t, path), substring) {
		t.Errorf("File %s unexpectedly contains %q", path, substring)
	}
}

// SnapshotDirectory returns the content of every regular file under dir,
// keyed by slash-separated relative path
func SnapshotDirectory(t *testing.T, dir string) map[string]string {
	t.Helper()

	files := make(map[string]string)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(relPath)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to snapshot directory: %v", err)
	}
	return files
}
