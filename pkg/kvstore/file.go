package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps all values in one JSON object on disk. Every operation
// reads the file, so several processes sharing the path observe each other's
// writes. Writes go to a temp file in the same directory and are renamed into
// place.
//
// If the file cannot be decoded, Get reports ErrCorruptValue for every key.
// The next write replaces the damaged file with the changed keys only.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var (
	_ Store   = (*FileStore)(nil)
	_ Batcher = (*FileStore)(nil)
)

// NewFileStore resolves path to an absolute path and creates its directory
// with mode 0700.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: file store path is empty", ErrInvalidConfig)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve %q: %w", ErrInvalidConfig, path, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o700); err != nil {
		return nil, fmt.Errorf("kvstore: create directory: %w", err)
	}

	return &FileStore{path: abs}, nil
}

// Path returns the absolute file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, map[string]string{key: value})
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.DeleteMany(ctx, key)
}

func (s *FileStore) SetMany(_ context.Context, values map[string]string) error {
	for key := range values {
		if key == "" {
			return ErrEmptyKey
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.readForUpdate()
	if err != nil {
		return err
	}
	maps.Copy(current, values)
	return s.write(current)
}

func (s *FileStore) DeleteMany(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.readForUpdate()
	if err != nil {
		return err
	}
	for _, key := range keys {
		delete(current, key)
	}
	return s.write(current)
}

func (s *FileStore) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("kvstore: read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return map[string]string{}, nil
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, errors.Join(ErrCorruptValue, err)
	}
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}

// readForUpdate treats a corrupt file as empty.
func (s *FileStore) readForUpdate() (map[string]string, error) {
	values, err := s.read()
	if errors.Is(err, ErrCorruptValue) {
		return map[string]string{}, nil
	}
	return values, err
}

func (s *FileStore) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("kvstore: encode: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("kvstore: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("kvstore: chmod temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("kvstore: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("kvstore: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("kvstore: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("kvstore: replace %s: %w", s.path, err)
	}
	return nil
}
