// Package blob stores uploaded document bytes on the local filesystem.
package blob

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store writes uploads under a single directory. Filenames are taken as
// given, so re-uploading a name overwrites the previous bytes, matching the
// overwrite semantics of the chunk index.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save writes data to disk and returns the path it was written to.
func (s *Store) Save(data []byte, filename string) (string, error) {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Path returns where a given filename would be stored.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}
