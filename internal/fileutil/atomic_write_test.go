package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "test.txt")
	data := []byte("hello world")
	perm := os.FileMode(0o644)

	if err := AtomicWriteFile(filename, data, perm); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("expected content %q, got %q", data, content)
	}

	info, err := os.Stat(filename)
	if err != nil {
		t.Fatalf("failed to stat file: %v", err)
	}
	if info.Mode() != perm {
		t.Errorf("expected file mode %v, got %v", perm, info.Mode())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp artifacts left behind: %d entries", len(entries))
	}
}

func TestAtomicWriteFileMissingDir(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "nope", "test.txt")
	if err := AtomicWriteFile(filename, []byte("x"), 0o644); err == nil {
		t.Error("expected error for missing directory")
	}
}
