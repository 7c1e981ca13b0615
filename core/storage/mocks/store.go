package mocks

import (
	"context"

	"bibforge/core/record"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of storage.Store
type Store struct {
	mock.Mock
}

func (m *Store) Load(ctx context.Context, path string) (record.Collection, error) {
	args := m.Called(ctx, path)
	if c, ok := args.Get(0).(record.Collection); ok {
		return c, args.Error(1)
	}
	return record.Collection{}, args.Error(1)
}

func (m *Store) Write(ctx context.Context, path string, c record.Collection) error {
	args := m.Called(ctx, path, c)
	return args.Error(0)
}

func (m *Store) Enumerate(dir string) ([]string, error) {
	args := m.Called(dir)
	if files, ok := args.Get(0).([]string); ok {
		return files, args.Error(1)
	}
	return nil, args.Error(1)
}
