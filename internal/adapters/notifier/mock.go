package notifier

import (
	"cat-async/internal/core/domain"
	"context"

	"github.com/stretchr/testify/mock"
)

type MockObserver struct {
	mock.Mock
}

func NewMockObserver() *MockObserver {
	return &MockObserver{}
}

func (m *MockObserver) Publish(ctx context.Context, event domain.SessionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockObserver) Notify(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}
