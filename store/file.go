package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/anibaldeboni/zero-paper/soilbyte/sensor"
)

// FileStore keeps the reading in a single JSON file
type FileStore struct {
	path   string
	atomic bool
}

// NewFileStore creates the parent directory of path and returns the store.
// With atomic set, writes go through a temp file and a rename so readers never
// see a partially written snapshot.
func NewFileStore(path string, atomic bool) (*FileStore, error) {
	if path == "" {
		path = DefaultConfig().Path
	}

	s := &FileStore{path: path, atomic: atomic}
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file location
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) ensureDir() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// Write replaces the file content with the encoded reading
func (s *FileStore) Write(_ context.Context, reading sensor.Reading) error {
	data, err := encode(reading)
	if err != nil {
		return err
	}

	if err := s.ensureDir(); err != nil {
		return err
	}

	if !s.atomic {
		if err := os.WriteFile(s.path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", s.path, err)
		}
		return nil
	}

	return s.writeAtomic(data)
}

func (s *FileStore) writeAtomic(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", s.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Read returns the file content unchanged
func (s *FileStore) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	if err := validate(data, s.path); err != nil {
		return nil, err
	}
	return data, nil
}

// Exists reports whether the file is present
func (s *FileStore) Exists(_ context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", s.path, err)
}

// Close is a no-op for files
func (s *FileStore) Close() error {
	return nil
}
