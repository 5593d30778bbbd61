package worker

import (
	"context"

	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
)

// ImportDeckJob imports a vocabulary deck for one student.
type ImportDeckJob struct {
	Importer  DeckImporter
	StudentID int64
	Entries   []models.VocabularyEntry
}

func (j *ImportDeckJob) Name() string { return "import_deck" }

func (j *ImportDeckJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"student_id": j.StudentID,
		"entries":    len(j.Entries),
	})
	log.Info("starting deck import")

	res, err := j.Importer.RunDeckImport(ctx, j.StudentID, j.Entries)
	if err != nil {
		return err
	}
	log.Info("deck import finished: %d cards created, %d already present", res.CardsCreated, res.CardsSkipped)
	return nil
}

// DueRemindersJob runs one reminder sweep over all reachable students.
type DueRemindersJob struct {
	Sender ReminderSender
}

func (j *DueRemindersJob) Name() string { return "due_reminders" }

func (j *DueRemindersJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	report, err := j.Sender.SendDueReminders(ctx)
	if err != nil {
		return err
	}
	log.Info("reminder sweep: checked=%d sent=%d skipped=%d failed=%d",
		report.Checked, report.Sent, report.Skipped, report.Failed)
	return nil
}
