package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lexiflash/internal/models"
)

// MockNotifier is a mock implementation of notify.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, student models.Student, message string) error {
	args := m.Called(ctx, student, message)
	return args.Error(0)
}
