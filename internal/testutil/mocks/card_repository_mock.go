package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/lexiflash/internal/flashcard"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

// MockCardRepository is a mock implementation of repository.CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) card(args mock.Arguments) (*models.Card, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Card), args.Error(1)
}

func (m *MockCardRepository) cards(args mock.Arguments) ([]models.Card, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Card), args.Error(1)
}

func (m *MockCardRepository) Create(ctx context.Context, studentID int64, content models.CardContent, now time.Time) (*models.Card, error) {
	return m.card(m.Called(ctx, studentID, content, now))
}

func (m *MockCardRepository) Get(ctx context.Context, id int64) (*models.Card, error) {
	return m.card(m.Called(ctx, id))
}

func (m *MockCardRepository) FetchDue(ctx context.Context, studentID int64, now time.Time, limit int) ([]models.Card, error) {
	return m.cards(m.Called(ctx, studentID, now, limit))
}

func (m *MockCardRepository) FetchAll(ctx context.Context, studentID int64) ([]models.Card, error) {
	return m.cards(m.Called(ctx, studentID))
}

func (m *MockCardRepository) List(ctx context.Context, filter repository.CardFilter) ([]models.Card, error) {
	return m.cards(m.Called(ctx, filter))
}

func (m *MockCardRepository) CountDue(ctx context.Context, studentID int64, now time.Time) (int, error) {
	args := m.Called(ctx, studentID, now)
	return args.Int(0), args.Error(1)
}

func (m *MockCardRepository) ApplyReview(ctx context.Context, id int64, grade flashcard.Grade, timeSeconds float64, now time.Time) (*models.Card, error) {
	return m.card(m.Called(ctx, id, grade, timeSeconds, now))
}

func (m *MockCardRepository) Reset(ctx context.Context, id int64, now time.Time) (*models.Card, error) {
	return m.card(m.Called(ctx, id, now))
}

func (m *MockCardRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCardRepository) ReviewHistory(ctx context.Context, id int64, limit int) ([]models.ReviewHistory, error) {
	args := m.Called(ctx, id, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReviewHistory), args.Error(1)
}
