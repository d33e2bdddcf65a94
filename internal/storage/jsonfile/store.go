package jsonfile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// Store is a whole-document JSON file: the document is always read and
// written in full, matching the flat-file persistence the shop runs on.
//
// All operations on one Store are serialized by its mutex, so a
// read-modify-write done through Update cannot lose a concurrent update
// from the same process. Two server processes sharing a data directory can
// still race each other; the later write wins. That limitation is accepted.
type Store struct {
	path   string
	logger *slog.Logger

	mu    sync.Mutex
	cache []byte // raw file bytes; nil when stale
}

// New creates a store bound to a single JSON file.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load returns the raw document bytes. It returns ErrNotFound when the file
// does not exist; decoding is left to the caller, which knows the shape.
func (s *Store) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() ([]byte, error) {
	if s.cache != nil {
		return s.cache, nil
	}
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: %w", s.path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	s.cache = data
	return data, nil
}

// Save marshals v with two-space indentation (the format the original data
// files use) and replaces the document atomically via a temp file rename.
func (s *Store) Save(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(v)
}

func (s *Store) save(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", s.path, err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	s.cache = data
	return nil
}

// Update runs a read-modify-write cycle under the store's lock. fn receives
// the current raw document (nil when the file does not exist yet) and
// returns the value to persist.
func (s *Store) Update(fn func(raw []byte) (any, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.load()
	if err != nil && !IsNotFound(err) {
		return err
	}
	next, err := fn(raw)
	if err != nil {
		return err
	}
	return s.save(next)
}

// Invalidate drops the cached bytes so the next Load re-reads the file.
// The watcher calls this when the file changes on disk.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.cache = nil
	s.mu.Unlock()
}
