// Package store persists lobby and session state under fixed keys.
//
// A FileStore keeps one file per key inside a data directory; a MemoryStore
// holds the same keys in memory for tests and throwaway sessions.
package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// Storage keys. The .v1 suffix versions the stored format.
const (
	KeyLobbyState      = "pitango.lobbyState.v1"
	KeySessionSnapshot = "pitango.sessionSnapshot.v1"
	KeyGameState       = "pitango.gameState.v1"
)

// ErrNotFound is returned by Get when a key has never been written or was
// deleted.
var ErrNotFound = errors.New("key not found")

// Store is a small key/value store for serialized state.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
	// Delete removes keys. Missing keys are not an error.
	Delete(keys ...string) error
}

// FileStore stores each key as <dir>/<key>.json.
type FileStore struct {
	dir    string
	logger *log.Logger
}

// NewFileStore creates dir if needed and returns a store rooted at it.
func NewFileStore(dir string, logger *log.Logger) (*FileStore, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir, logger: logger.WithPrefix("store")}, nil
}

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get reads the value stored under key.
func (s *FileStore) Get(key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Put atomically replaces the value stored under key.
func (s *FileStore) Put(key string, data []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := WriteFileAtomic(p, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	s.logger.Debug("Stored key", "key", key, "bytes", len(data))
	return nil
}

// Delete removes the files for keys.
func (s *FileStore) Delete(keys ...string) error {
	var errs []error
	for _, key := range keys {
		p, err := s.path(key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to delete %s: %w", key, err))
			continue
		}
		s.logger.Debug("Deleted key", "key", key)
	}
	return errors.Join(errs...)
}

// MemoryStore is an in-memory Store. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Put(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryStore) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

// Keys returns the stored keys in sorted order.
func (m *MemoryStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
