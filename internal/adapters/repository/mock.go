package repository

import (
	"cat-async/internal/core/port"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockSessionRepository struct {
	mock.Mock
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

func (m *MockSessionRepository) Create(ctx context.Context, session port.SessionController) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (port.SessionController, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.SessionController), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionRepository) FindAllExpired(ctx context.Context, before time.Time) ([]port.SessionController, error) {
	args := m.Called(ctx, before)
	return args.Get(0).([]port.SessionController), args.Error(1)
}

func (m *MockSessionRepository) FindAll(ctx context.Context) ([]port.SessionController, error) {
	args := m.Called(ctx)
	return args.Get(0).([]port.SessionController), args.Error(1)
}

func (m *MockSessionRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
