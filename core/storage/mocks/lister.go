package mocks

import (
	"context"

	"gallery-sync/core/storage"

	"github.com/stretchr/testify/mock"
)

// Lister is a mock implementation of storage.Lister
type Lister struct {
	mock.Mock
}

func (m *Lister) List(ctx context.Context, prefix string) ([]storage.Object, error) {
	args := m.Called(ctx, prefix)
	if objs, ok := args.Get(0).([]storage.Object); ok {
		return objs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Lister) Metadata(ctx context.Context, key string) (map[string]string, error) {
	args := m.Called(ctx, key)
	if md, ok := args.Get(0).(map[string]string); ok {
		return md, args.Error(1)
	}
	return nil, args.Error(1)
}
