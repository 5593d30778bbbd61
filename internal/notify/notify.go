// Package notify delivers due-card reminders to students.
package notify

import (
	"context"
	"errors"

	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
)

// ErrNoChannel is returned when the student cannot be reached.
var ErrNoChannel = errors.New("notify: student has no reminder channel")

type Notifier interface {
	Notify(ctx context.Context, student models.Student, message string) error
}

// Log only records reminders; it is used when no bot token is configured.
type Log struct{}

func (Log) Notify(ctx context.Context, student models.Student, message string) error {
	logger.FromContext(ctx).WithPrefix("notify").WithFields(map[string]any{
		"student_id": student.ID,
		"username":   student.Username,
	}).Info("reminder: %s", message)
	return nil
}
