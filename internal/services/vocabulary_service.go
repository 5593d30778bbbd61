package services

import (
	"context"
	"strings"

	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
)

// VocabularyPage is one page of catalogue entries plus the unpaged total.
type VocabularyPage struct {
	Entries []models.VocabularyEntry `json:"entries"`
	Total   int                      `json:"total"`
	Limit   int                      `json:"limit"`
	Offset  int                      `json:"offset"`
}

// VocabularyService manages the shared vocabulary catalogue
type VocabularyService interface {
	ListVocabulary(ctx context.Context, filter models.VocabularyFilter) (*VocabularyPage, error)
	GetVocabulary(ctx context.Context, id int64) (*models.VocabularyEntry, error)
	AddVocabulary(ctx context.Context, entry models.VocabularyEntry) (*models.VocabularyEntry, error)
}

type vocabularyService struct {
	vocabRepo repository.VocabularyRepository
}

// NewVocabularyService creates a new VocabularyService
func NewVocabularyService(vocabRepo repository.VocabularyRepository) VocabularyService {
	return &vocabularyService{vocabRepo: vocabRepo}
}

func normalizeEntry(e models.VocabularyEntry) models.VocabularyEntry {
	e.Term = strings.TrimSpace(e.Term)
	e.Translation = strings.TrimSpace(e.Translation)
	e.Language = strings.TrimSpace(e.Language)
	e.Level = strings.ToUpper(strings.TrimSpace(e.Level))
	return e
}

func (s *vocabularyService) ListVocabulary(ctx context.Context, filter models.VocabularyFilter) (*VocabularyPage, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing vocabulary: language=%s, level=%s, q=%s", filter.Language, filter.Level, filter.Search)

	if filter.Limit < 0 || filter.Limit > maxListLimit {
		return nil, errors.NewValidationError("limit", "must be between 0 and 500")
	}
	if filter.Offset < 0 {
		return nil, errors.NewValidationError("offset", "cannot be negative")
	}
	if filter.Limit == 0 {
		filter.Limit = 100
	}
	filter.Level = strings.ToUpper(filter.Level)

	entries, err := s.vocabRepo.List(ctx, filter)
	if err != nil {
		return nil, repoError(ctx, err, "vocabulary", filter.Search)
	}
	total, err := s.vocabRepo.Count(ctx, filter)
	if err != nil {
		return nil, repoError(ctx, err, "vocabulary", filter.Search)
	}
	if entries == nil {
		entries = []models.VocabularyEntry{}
	}
	return &VocabularyPage{Entries: entries, Total: total, Limit: filter.Limit, Offset: filter.Offset}, nil
}

func (s *vocabularyService) GetVocabulary(ctx context.Context, id int64) (*models.VocabularyEntry, error) {
	entry, err := s.vocabRepo.Get(ctx, id)
	if err != nil {
		return nil, repoError(ctx, err, "vocabulary entry", id)
	}
	return entry, nil
}

func (s *vocabularyService) AddVocabulary(ctx context.Context, entry models.VocabularyEntry) (*models.VocabularyEntry, error) {
	log := logger.FromContext(ctx)
	entry = normalizeEntry(entry)
	log.Debug("adding vocabulary entry: term=%s, language=%s", entry.Term, entry.Language)

	if err := validate.Struct(entry); err != nil {
		return nil, errors.FromValidation(err)
	}

	stored, err := s.vocabRepo.Insert(ctx, entry)
	if err != nil {
		return nil, repoError(ctx, err, "vocabulary entry", entry.Term+"/"+entry.Language)
	}
	log.Info("vocabulary entry added: id=%d", stored.ID)
	return stored, nil
}
