package session

import (
	"cat-async/internal/core/domain"
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSessionService is a mock implementation of SessionService
type MockSessionService struct {
	mock.Mock
}

// NewMockSessionService creates a new MockSessionService
func NewMockSessionService() *MockSessionService {
	return &MockSessionService{}
}

func (m *MockSessionService) Open(ctx context.Context, link string) (*domain.UploadSession, error) {
	args := m.Called(ctx, link)
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockSessionService) Get(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockSessionService) SelectFile(ctx context.Context, id uuid.UUID, location string) (*domain.UploadSession, error) {
	args := m.Called(ctx, id, location)
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockSessionService) Submit(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockSessionService) Cancel(ctx context.Context, id uuid.UUID) (*domain.UploadSession, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.UploadSession), args.Error(1)
}

func (m *MockSessionService) Discard(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSessionController is a mock implementation of SessionController
type MockSessionController struct {
	mock.Mock
}

// NewMockSessionController creates a new MockSessionController
func NewMockSessionController() *MockSessionController {
	return &MockSessionController{}
}

func (m *MockSessionController) ID() uuid.UUID {
	args := m.Called()
	return args.Get(0).(uuid.UUID)
}

func (m *MockSessionController) Snapshot() domain.UploadSession {
	args := m.Called()
	return args.Get(0).(domain.UploadSession)
}

func (m *MockSessionController) SelectFile(ctx context.Context, file *domain.SelectedFile) {
	m.Called(ctx, file)
}

func (m *MockSessionController) SelectFileUnlessSucceeded(ctx context.Context, file *domain.SelectedFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockSessionController) Submit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionController) Cancel(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionController) Wait() {
	m.Called()
}

func (m *MockSessionController) Close(ctx context.Context) {
	m.Called(ctx)
}
