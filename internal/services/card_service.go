package services

import (
	"context"

	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/flashcard"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

const (
	defaultHistoryLimit = 50
	maxListLimit        = 500
)

// CreateCardRequest creates a card from free text or from a catalogue entry.
// With VocabularyID set, empty sides are filled from the entry.
type CreateCardRequest struct {
	Front        string `json:"front" validate:"max=500"`
	Back         string `json:"back" validate:"max=500"`
	VocabularyID *int64 `json:"vocabulary_id"`
}

// ReviewRequest is one graded recall attempt. Grade is a pointer so that a
// missing or null grade is told apart from GradeBlackout.
type ReviewRequest struct {
	Grade       *flashcard.Grade `json:"grade" validate:"required"`
	TimeSeconds float64          `json:"time_seconds" validate:"gte=0"`
}

// CardService schedules reviews for a student's deck. Every card operation
// is scoped to the owning student; another student's card is not found.
type CardService interface {
	CreateCard(ctx context.Context, studentID int64, req CreateCardRequest) (*models.Card, error)
	GetCard(ctx context.Context, studentID, cardID int64) (*models.Card, error)
	ListCards(ctx context.Context, filter repository.CardFilter) ([]models.Card, error)
	DueCards(ctx context.Context, studentID int64, limit int) ([]models.Card, error)
	ReviewCard(ctx context.Context, studentID, cardID int64, req ReviewRequest) (*models.Card, error)
	ResetCard(ctx context.Context, studentID, cardID int64) (*models.Card, error)
	DeleteCard(ctx context.Context, studentID, cardID int64) error
	CardHistory(ctx context.Context, studentID, cardID int64, limit int) ([]models.ReviewHistory, error)
	Stats(ctx context.Context, studentID int64) (*models.StudentStats, error)
}

// CardOptions tunes CardService.
type CardOptions struct {
	Mastery  flashcard.MasteryThreshold
	DueLimit int
	Clock    Clock
}

type cardService struct {
	cardRepo  repository.CardRepository
	vocabRepo repository.VocabularyRepository
	opts      CardOptions
}

// NewCardService creates a new CardService
func NewCardService(cardRepo repository.CardRepository, vocabRepo repository.VocabularyRepository, opts CardOptions) CardService {
	if opts.Mastery.MinRepetition <= 0 {
		opts.Mastery = flashcard.DefaultMastery
	}
	if opts.DueLimit <= 0 {
		opts.DueLimit = 20
	}
	return &cardService{cardRepo: cardRepo, vocabRepo: vocabRepo, opts: opts}
}

func (s *cardService) CreateCard(ctx context.Context, studentID int64, req CreateCardRequest) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating card: student_id=%d", studentID)

	if err := validate.Struct(req); err != nil {
		return nil, errors.FromValidation(err)
	}

	content := models.CardContent{Front: req.Front, Back: req.Back, VocabularyID: req.VocabularyID}
	if req.VocabularyID != nil {
		entry, err := s.vocabRepo.Get(ctx, *req.VocabularyID)
		if err != nil {
			return nil, repoError(ctx, err, "vocabulary entry", *req.VocabularyID)
		}
		if content.Front == "" {
			content.Front = entry.Term
		}
		if content.Back == "" {
			content.Back = entry.Translation
		}
	}
	if err := validate.Struct(content); err != nil {
		return nil, errors.FromValidation(err)
	}

	card, err := s.cardRepo.Create(ctx, studentID, content, s.opts.Clock.now())
	if err != nil {
		return nil, repoError(ctx, err, "card", content.Front)
	}
	log.Info("card created: id=%d, student_id=%d", card.ID, studentID)
	return card, nil
}

// owned loads the card and hides it from other students.
func (s *cardService) owned(ctx context.Context, studentID, cardID int64) (*models.Card, error) {
	card, err := s.cardRepo.Get(ctx, cardID)
	if err != nil {
		return nil, repoError(ctx, err, "card", cardID)
	}
	if card.StudentID != studentID {
		logger.FromContext(ctx).Debug("card %d belongs to student %d, not %d", cardID, card.StudentID, studentID)
		return nil, errors.NewNotFoundError("card", cardID)
	}
	return card, nil
}

func (s *cardService) GetCard(ctx context.Context, studentID, cardID int64) (*models.Card, error) {
	return s.owned(ctx, studentID, cardID)
}

func (s *cardService) ListCards(ctx context.Context, filter repository.CardFilter) ([]models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing cards: student_id=%d", filter.StudentID)

	if filter.Limit < 0 || filter.Limit > maxListLimit {
		return nil, errors.NewValidationError("limit", "must be between 0 and 500")
	}
	if filter.Offset < 0 {
		return nil, errors.NewValidationError("offset", "cannot be negative")
	}

	cards, err := s.cardRepo.List(ctx, filter)
	if err != nil {
		return nil, repoError(ctx, err, "cards of student", filter.StudentID)
	}
	return cards, nil
}

func (s *cardService) DueCards(ctx context.Context, studentID int64, limit int) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	if limit < 0 || limit > maxListLimit {
		return nil, errors.NewValidationError("limit", "must be between 0 and 500")
	}
	if limit == 0 {
		limit = s.opts.DueLimit
	}
	log.Debug("fetching due cards: student_id=%d, limit=%d", studentID, limit)

	cards, err := s.cardRepo.FetchDue(ctx, studentID, s.opts.Clock.now(), limit)
	if err != nil {
		return nil, repoError(ctx, err, "due cards of student", studentID)
	}
	return cards, nil
}

func (s *cardService) ReviewCard(ctx context.Context, studentID, cardID int64, req ReviewRequest) (*models.Card, error) {
	log := logger.FromContext(ctx)

	if req.Grade == nil {
		return nil, errors.NewValidationError("grade", "is required")
	}
	grade := *req.Grade
	log.Debug("reviewing card: card_id=%d, grade=%s", cardID, grade)

	if !grade.IsValid() {
		return nil, errors.NewValidationError("grade", "must be between 0 and 5")
	}
	if err := validate.Struct(req); err != nil {
		return nil, errors.FromValidation(err)
	}
	if _, err := s.owned(ctx, studentID, cardID); err != nil {
		return nil, err
	}

	card, err := s.cardRepo.ApplyReview(ctx, cardID, grade, req.TimeSeconds, s.opts.Clock.now())
	if err != nil {
		return nil, repoError(ctx, err, "card", cardID)
	}
	log.Info("card reviewed: id=%d, grade=%s, next_interval=%d, ease=%.2f",
		card.ID, grade, card.IntervalDays, card.EaseFactor)
	return card, nil
}

func (s *cardService) ResetCard(ctx context.Context, studentID, cardID int64) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Info("resetting card: card_id=%d", cardID)

	if _, err := s.owned(ctx, studentID, cardID); err != nil {
		return nil, err
	}
	card, err := s.cardRepo.Reset(ctx, cardID, s.opts.Clock.now())
	if err != nil {
		return nil, repoError(ctx, err, "card", cardID)
	}
	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, studentID, cardID int64) error {
	log := logger.FromContext(ctx)
	log.Info("deleting card: card_id=%d", cardID)

	if _, err := s.owned(ctx, studentID, cardID); err != nil {
		return err
	}
	return repoError(ctx, s.cardRepo.Delete(ctx, cardID), "card", cardID)
}

func (s *cardService) CardHistory(ctx context.Context, studentID, cardID int64, limit int) ([]models.ReviewHistory, error) {
	if limit < 0 || limit > maxListLimit {
		return nil, errors.NewValidationError("limit", "must be between 0 and 500")
	}
	if limit == 0 {
		limit = defaultHistoryLimit
	}
	if _, err := s.owned(ctx, studentID, cardID); err != nil {
		return nil, err
	}

	history, err := s.cardRepo.ReviewHistory(ctx, cardID, limit)
	if err != nil {
		return nil, repoError(ctx, err, "review history of card", cardID)
	}
	return history, nil
}

func (s *cardService) Stats(ctx context.Context, studentID int64) (*models.StudentStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing stats: student_id=%d", studentID)

	cards, err := s.cardRepo.FetchAll(ctx, studentID)
	if err != nil {
		return nil, repoError(ctx, err, "cards of student", studentID)
	}
	stats := s.opts.Mastery.Stats(cards, s.opts.Clock.now())
	return &stats, nil
}
