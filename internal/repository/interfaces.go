package repository

import (
	"context"
	"errors"
	"time"

	"github.com/vytor/lexiflash/internal/flashcard"
	"github.com/vytor/lexiflash/internal/models"
)

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrConflict is returned when a row changed between read and write.
	ErrConflict = errors.New("repository: concurrent modification")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("repository: duplicate")
)

// StudentRepository handles learner data access
type StudentRepository interface {
	Get(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context) ([]models.Student, error)
	ListReminderTargets(ctx context.Context) ([]models.Student, error)
	Upsert(ctx context.Context, s models.NewStudent) (*models.Student, error)
	UpdateReminded(ctx context.Context, id int64, t time.Time) error
	Delete(ctx context.Context, id int64) error
}

// VocabularyRepository handles the shared vocabulary catalogue
type VocabularyRepository interface {
	Get(ctx context.Context, id int64) (*models.VocabularyEntry, error)
	Insert(ctx context.Context, e models.VocabularyEntry) (*models.VocabularyEntry, error)
	// UpsertBatch returns the stored entries in input order, reusing rows that
	// already exist for the same term and language.
	UpsertBatch(ctx context.Context, entries []models.VocabularyEntry) ([]models.VocabularyEntry, error)
	List(ctx context.Context, filter models.VocabularyFilter) ([]models.VocabularyEntry, error)
	Count(ctx context.Context, filter models.VocabularyFilter) (int, error)
}

// CardFilter narrows a student's deck listing.
type CardFilter struct {
	StudentID int64
	Search    string
	Limit     int
	Offset    int
}

// CardRepository is the persistence boundary of the review scheduler.
// Cards change only through ApplyReview and Reset.
type CardRepository interface {
	Create(ctx context.Context, studentID int64, content models.CardContent, now time.Time) (*models.Card, error)
	Get(ctx context.Context, id int64) (*models.Card, error)
	// FetchDue returns cards with due_at <= now, oldest due first.
	FetchDue(ctx context.Context, studentID int64, now time.Time, limit int) ([]models.Card, error)
	FetchAll(ctx context.Context, studentID int64) ([]models.Card, error)
	List(ctx context.Context, filter CardFilter) ([]models.Card, error)
	CountDue(ctx context.Context, studentID int64, now time.Time) (int, error)
	// ApplyReview loads, reschedules and persists the card in one
	// transaction. A concurrent writer yields ErrConflict.
	ApplyReview(ctx context.Context, id int64, grade flashcard.Grade, timeSeconds float64, now time.Time) (*models.Card, error)
	// Reset restores the initial state and discards review history.
	Reset(ctx context.Context, id int64, now time.Time) (*models.Card, error)
	Delete(ctx context.Context, id int64) error
	ReviewHistory(ctx context.Context, id int64, limit int) ([]models.ReviewHistory, error)
}
