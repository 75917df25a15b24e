package store

import (
	"context"
	"errors"

	"sales-agent/internal/table"
)

// ErrNoTable indicates no sales file has been uploaded yet.
var ErrNoTable = errors.New("no table persisted")

// TableStore persists the single sales table; a save fully replaces any
// previous table. There is no locking: concurrent saves race last-write-wins.
type TableStore interface {
	Save(ctx context.Context, t table.Table) error
	Load(ctx context.Context) (table.Table, error)
	Exists() bool
}
