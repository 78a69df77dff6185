package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"photorelay/internal/port"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Store(ctx context.Context, input port.StoreInput) (*port.StoreOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.StoreOutput), args.Error(1)
}

func (m *MockObjectStorage) Principal() string {
	args := m.Called()
	return args.String(0)
}
