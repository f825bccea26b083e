package httpupload

import (
	"cat-async/internal/core/domain"
	"cat-async/internal/core/port"
	"context"

	"github.com/stretchr/testify/mock"
)

type MockTransferDriver struct {
	mock.Mock
}

func NewMockTransferDriver() *MockTransferDriver {
	return &MockTransferDriver{}
}

func (m *MockTransferDriver) Send(ctx context.Context, file domain.SelectedFile, target domain.UploadTarget, onProgress port.ProgressFunc) domain.TransferResult {
	args := m.Called(ctx, file, target, onProgress)
	return args.Get(0).(domain.TransferResult)
}
