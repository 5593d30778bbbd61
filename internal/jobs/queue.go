package jobs

import "github.com/vytor/lexiflash/internal/models"

// JobQueue provides an abstraction for enqueueing background jobs
type JobQueue interface {
	EnqueueDeckImport(studentID int64, entries []models.VocabularyEntry) error
	EnqueueDueReminders() error
}
