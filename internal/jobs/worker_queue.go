package jobs

import (
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool *worker.Pool

	// Set after construction; the services that run the jobs depend on the
	// queue themselves.
	Importer worker.DeckImporter
	Sender   worker.ReminderSender
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool) *WorkerQueue {
	return &WorkerQueue{pool: pool}
}

func (q *WorkerQueue) EnqueueDeckImport(studentID int64, entries []models.VocabularyEntry) error {
	return q.pool.Submit(&worker.ImportDeckJob{
		Importer:  q.Importer,
		StudentID: studentID,
		Entries:   entries,
	})
}

func (q *WorkerQueue) EnqueueDueReminders() error {
	return q.pool.Submit(&worker.DueRemindersJob{Sender: q.Sender})
}
