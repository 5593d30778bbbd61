package services

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/vytor/lexiflash/internal/errors"
	"github.com/vytor/lexiflash/internal/jobs"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/repository"
	"github.com/vytor/lexiflash/internal/worker"
)

const maxDeckSize = 1000

// DeckService imports vocabulary decks into a student's cards
type DeckService interface {
	// ImportDeck validates the deck and queues it for background import.
	ImportDeck(ctx context.Context, studentID int64, entries []models.VocabularyEntry) error
	// RunDeckImport performs the import; it is the body of the queued job.
	RunDeckImport(ctx context.Context, studentID int64, entries []models.VocabularyEntry) (models.ImportResult, error)
}

type deckService struct {
	cardRepo  repository.CardRepository
	vocabRepo repository.VocabularyRepository
	queue     jobs.JobQueue
	clock     Clock
}

// NewDeckService creates a new DeckService
func NewDeckService(cardRepo repository.CardRepository, vocabRepo repository.VocabularyRepository, queue jobs.JobQueue, clock Clock) DeckService {
	return &deckService{cardRepo: cardRepo, vocabRepo: vocabRepo, queue: queue, clock: clock}
}

func (s *deckService) ImportDeck(ctx context.Context, studentID int64, entries []models.VocabularyEntry) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"student_id": studentID,
		"entries":    len(entries),
	})

	if len(entries) == 0 {
		return errors.NewValidationError("entries", "cannot be empty")
	}
	if len(entries) > maxDeckSize {
		return errors.NewValidationError("entries", fmt.Sprintf("at most %d per import", maxDeckSize))
	}
	normalized := make([]models.VocabularyEntry, len(entries))
	for i, e := range entries {
		normalized[i] = normalizeEntry(e)
		if err := validate.Struct(normalized[i]); err != nil {
			appErr := errors.FromValidation(err)
			appErr.Message = fmt.Sprintf("entry %d: %s", i, appErr.Message)
			return appErr
		}
	}

	if err := s.queue.EnqueueDeckImport(studentID, normalized); err != nil {
		if stderrors.Is(err, worker.ErrQueueFull) || stderrors.Is(err, worker.ErrPoolStopped) {
			log.Warn("deck import rejected: %v", err)
			return errors.NewUnavailableError("import queue is busy, retry later", err)
		}
		log.Error("failed to queue deck import: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("deck import queued")
	return nil
}

func (s *deckService) RunDeckImport(ctx context.Context, studentID int64, entries []models.VocabularyEntry) (models.ImportResult, error) {
	log := logger.FromContext(ctx)
	var res models.ImportResult

	stored, err := s.vocabRepo.UpsertBatch(ctx, entries)
	if err != nil {
		return res, fmt.Errorf("upsert vocabulary: %w", err)
	}
	res.EntriesStored = len(stored)

	for _, e := range stored {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		id := e.ID
		_, err := s.cardRepo.Create(ctx, studentID, models.CardContent{
			Front:        e.Term,
			Back:         e.Translation,
			VocabularyID: &id,
		}, s.clock.now())
		switch {
		case err == nil:
			res.CardsCreated++
		case stderrors.Is(err, repository.ErrDuplicate):
			res.CardsSkipped++
		default:
			return res, fmt.Errorf("create card for %q: %w", e.Term, err)
		}
	}
	log.Debug("deck import: stored=%d created=%d skipped=%d", res.EntriesStored, res.CardsCreated, res.CardsSkipped)
	return res, nil
}
