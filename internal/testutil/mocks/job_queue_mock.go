package mocks

import (
	"github.com/stretchr/testify/mock"
	"github.com/vytor/lexiflash/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueDeckImport(studentID int64, entries []models.VocabularyEntry) error {
	args := m.Called(studentID, entries)
	return args.Error(0)
}

func (m *MockJobQueue) EnqueueDueReminders() error {
	args := m.Called()
	return args.Error(0)
}
