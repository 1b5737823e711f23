package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nikbrunner/nt/internal/model"
)

// Storage defines the interface for persisting items.
// BatchUpsert must apply all items or none.
type Storage interface {
	LoadAll(ctx context.Context) ([]model.Item, error)
	BatchUpsert(ctx context.Context, items []model.Item) error
	DeleteOne(ctx context.Context, id string) error
	Path() string
	Close() error
}

// JSONStorage implements Storage using a single JSON file.
// Writes replace the file atomically.
type JSONStorage struct {
	mu   sync.Mutex
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Close is a no-op for file storage.
func (s *JSONStorage) Close() error {
	return nil
}

// LoadAll reads every item, sorted by order.
// Returns an empty collection if the file doesn't exist.
func (s *JSONStorage) LoadAll(ctx context.Context) ([]model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.read()
	if err != nil {
		return nil, err
	}
	return model.SortByOrder(store.Items), nil
}

// BatchUpsert merges items into the file in one write.
func (s *JSONStorage) BatchUpsert(ctx context.Context, items []model.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.read()
	if err != nil {
		return err
	}
	store.Upsert(items)
	return s.write(store)
}

// DeleteOne removes a single item. Returns model.ErrNotFound if it doesn't exist.
func (s *JSONStorage) DeleteOne(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	store, err := s.read()
	if err != nil {
		return err
	}
	if err := store.Remove(id); err != nil {
		return fmt.Errorf("delete %q: %w", id, err)
	}
	return s.write(store)
}

func (s *JSONStorage) read() (*model.Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewStore(), nil
		}
		return nil, err
	}

	var store model.Store
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if store.Items == nil {
		store.Items = []model.Item{}
	}
	return &store, nil
}

// write replaces the file via a temp file and rename so readers never see
// a half-written collection.
func (s *JSONStorage) write(store *model.Store) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// OpenStorage opens the backend named in the config.
func OpenStorage(cfg *Config) (Storage, error) {
	switch cfg.Backend {
	case BackendSQLite:
		return NewSQLiteStorage(cfg.DataPath)
	case BackendJSON:
		return NewJSONStorage(cfg.DataPath), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
