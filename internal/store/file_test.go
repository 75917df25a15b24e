package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"sales-agent/internal/table"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "sales.csv"))
}

func TestLoadBeforeSave(t *testing.T) {
	s := newTestStore(t)

	if s.Exists() {
		t.Error("expected Exists to be false before any save")
	}
	if _, err := s.Load(context.Background()); !errors.Is(err, ErrNoTable) {
		t.Errorf("expected ErrNoTable, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := table.Table{
		Columns: []string{"date", "product", "quantity", "total"},
		Rows: [][]string{
			{"2024-01-01", "Widget", "5", "50.0"},
		},
	}
	if err := s.Save(ctx, in); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !s.Exists() {
		t.Error("expected Exists to be true after save")
	}

	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(out.Columns) != 4 || out.Columns[0] != "date" {
		t.Errorf("unexpected columns: %v", out.Columns)
	}
	if len(out.Rows) != 1 || out.Rows[0][1] != "Widget" {
		t.Errorf("unexpected rows: %v", out.Rows)
	}
}

func TestSaveReplacesFully(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := table.Table{
		Columns: []string{"date", "product", "quantity", "total"},
		Rows: [][]string{
			{"2024-01-01", "Widget", "5", "50.0"},
			{"2024-01-02", "Gadget", "2", "30.0"},
		},
	}
	second := table.Table{
		Columns: []string{"date", "product", "quantity", "total", "region"},
		Rows: [][]string{
			{"2024-02-01", "Sprocket", "9", "90.0", "EU"},
		},
	}

	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	out, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(out.Rows) != 1 {
		t.Fatalf("expected the second table only, got %d rows", len(out.Rows))
	}
	if out.Rows[0][1] != "Sprocket" {
		t.Errorf("expected Sprocket, got %q", out.Rows[0][1])
	}
	if len(out.Columns) != 5 {
		t.Errorf("expected replaced header, got %v", out.Columns)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "sales.csv"))

	err := s.Save(context.Background(), table.Table{Columns: []string{"date"}})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no leftover temp files, found %v", matches)
	}
}
