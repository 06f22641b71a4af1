package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage writes export files under a base directory.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage returns a handle on baseDir. The directory is created by the
// first Save.
func NewLocalStorage(baseDir string) *LocalStorage {
	if baseDir == "" {
		baseDir = "./exports"
	}
	return &LocalStorage{baseDir: baseDir}
}

// Save writes data to filename relative to the base directory and returns the
// full path written. Names escaping the base directory are rejected.
func (s *LocalStorage) Save(filename string, data []byte) (string, error) {
	path, err := s.resolve(filename)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}
	return path, nil
}

func (s *LocalStorage) resolve(filename string) (string, error) {
	clean := filepath.Clean(filename)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("export file %q outside %s", filename, s.baseDir)
	}
	return filepath.Join(s.baseDir, clean), nil
}
