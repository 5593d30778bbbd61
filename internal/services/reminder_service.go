package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/notify"
	"github.com/vytor/lexiflash/internal/repository"
)

// ReminderService tells students when cards are waiting for them
type ReminderService interface {
	SendDueReminders(ctx context.Context) (models.ReminderReport, error)
}

type reminderService struct {
	studentRepo repository.StudentRepository
	cardRepo    repository.CardRepository
	notifier    notify.Notifier
	minInterval time.Duration
	clock       Clock
}

// NewReminderService creates a new ReminderService. A student is reminded at
// most once per minInterval.
func NewReminderService(
	studentRepo repository.StudentRepository,
	cardRepo repository.CardRepository,
	notifier notify.Notifier,
	minInterval time.Duration,
	clock Clock,
) ReminderService {
	return &reminderService{
		studentRepo: studentRepo,
		cardRepo:    cardRepo,
		notifier:    notifier,
		minInterval: minInterval,
		clock:       clock,
	}
}

func reminderMessage(due int) string {
	if due == 1 {
		return "You have 1 card due for review."
	}
	return fmt.Sprintf("You have %d cards due for review.", due)
}

func (s *reminderService) SendDueReminders(ctx context.Context) (models.ReminderReport, error) {
	log := logger.FromContext(ctx)
	var report models.ReminderReport

	students, err := s.studentRepo.ListReminderTargets(ctx)
	if err != nil {
		return report, fmt.Errorf("list reminder targets: %w", err)
	}

	now := s.clock.now()
	for _, st := range students {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++
		stLog := log.WithField("student_id", st.ID)

		if st.LastReminderAt != nil && now.Sub(*st.LastReminderAt) < s.minInterval {
			stLog.Debug("reminded at %s, skipping", st.LastReminderAt.Format(time.RFC3339))
			report.Skipped++
			continue
		}

		due, err := s.cardRepo.CountDue(ctx, st.ID, now)
		if err != nil {
			stLog.Error("failed to count due cards: %v", err)
			report.Failed++
			continue
		}
		if due == 0 {
			report.Skipped++
			continue
		}

		if err := s.notifier.Notify(ctx, st, reminderMessage(due)); err != nil {
			stLog.Warn("failed to send reminder: %v", err)
			report.Failed++
			continue
		}
		if err := s.studentRepo.UpdateReminded(ctx, st.ID, now); err != nil {
			stLog.Error("reminder sent but not recorded: %v", err)
		}
		report.Sent++
	}
	return report, nil
}
