package store

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sales-agent/internal/table"
)

// MockStore is a mock implementation of TableStore using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, t table.Table) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockStore) Load(ctx context.Context) (table.Table, error) {
	args := m.Called(ctx)
	return args.Get(0).(table.Table), args.Error(1)
}

func (m *MockStore) Exists() bool {
	args := m.Called()
	return args.Bool(0)
}
