package worker

import (
	"context"

	"github.com/vytor/lexiflash/internal/models"
)

// These interfaces keep the worker package free of a services import.

// DeckImporter adds catalogue entries and creates the student's cards.
type DeckImporter interface {
	RunDeckImport(ctx context.Context, studentID int64, entries []models.VocabularyEntry) (models.ImportResult, error)
}

// ReminderSender notifies students with due cards.
type ReminderSender interface {
	SendDueReminders(ctx context.Context) (models.ReminderReport, error)
}
