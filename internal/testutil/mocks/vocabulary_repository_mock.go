package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lexiflash/internal/models"
)

// MockVocabularyRepository is a mock implementation of repository.VocabularyRepository
type MockVocabularyRepository struct {
	mock.Mock
}

func (m *MockVocabularyRepository) Get(ctx context.Context, id int64) (*models.VocabularyEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VocabularyEntry), args.Error(1)
}

func (m *MockVocabularyRepository) Insert(ctx context.Context, e models.VocabularyEntry) (*models.VocabularyEntry, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VocabularyEntry), args.Error(1)
}

func (m *MockVocabularyRepository) UpsertBatch(ctx context.Context, entries []models.VocabularyEntry) ([]models.VocabularyEntry, error) {
	args := m.Called(ctx, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VocabularyEntry), args.Error(1)
}

func (m *MockVocabularyRepository) List(ctx context.Context, filter models.VocabularyFilter) ([]models.VocabularyEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VocabularyEntry), args.Error(1)
}

func (m *MockVocabularyRepository) Count(ctx context.Context, filter models.VocabularyFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}
