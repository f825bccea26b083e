package storage

import (
	"cat-async/internal/core/domain"
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockFileSource struct {
	mock.Mock
}

func NewMockFileSource() *MockFileSource {
	return &MockFileSource{}
}

func (m *MockFileSource) Stat(ctx context.Context, location string) (*domain.SelectedFile, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SelectedFile), args.Error(1)
}

func (m *MockFileSource) Open(ctx context.Context, file domain.SelectedFile) (io.ReadCloser, error) {
	args := m.Called(ctx, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
