package blob

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndOverwrite(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	path, err := s.Save([]byte("first"), "doc.txt")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(dir, "doc.txt") {
		t.Fatalf("unexpected path %q", path)
	}

	if _, err := s.Save([]byte("second"), "doc.txt"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "second" {
		t.Fatalf("expected overwrite, got %q", data)
	}
}

func TestSaveStripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	path, err := s.Save([]byte("x"), "../escape.txt")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(dir, "escape.txt") {
		t.Fatalf("path traversal not neutralized: %q", path)
	}
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := NewStore(dir); err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory to exist: %v", err)
	}
}
