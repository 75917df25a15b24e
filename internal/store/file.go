package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"sales-agent/internal/table"
)

// FileStore keeps the table as one CSV file at an injected path, so tests
// can point each store at a distinct temporary location.
type FileStore struct {
	path string
}

// NewFileStore builds a store backed by the CSV file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save replaces the persisted table. The write goes to a temp file first and
// is published with a rename, so readers never observe a partial file.
func (s *FileStore) Save(ctx context.Context, t table.Table) error {
	dir := filepath.Dir(s.path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(s.path), uuid.NewString()))

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if err := t.Encode(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write table: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace table: %w", err)
	}
	return nil
}

// Load reads the persisted table fully into memory.
func (s *FileStore) Load(ctx context.Context) (table.Table, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return table.Table{}, ErrNoTable
	}
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to read table: %w", err)
	}
	t, err := table.Parse(data)
	if err != nil {
		return table.Table{}, fmt.Errorf("failed to parse persisted table: %w", err)
	}
	return t, nil
}

// Exists reports whether a table is currently persisted.
func (s *FileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
