package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lexiflash/internal/models"
	"github.com/vytor/lexiflash/internal/services"
	"github.com/vytor/lexiflash/internal/testutil/mocks"
)

func TestReminderService_SendDueReminders(t *testing.T) {
	students := new(mocks.MockStudentRepository)
	cards := new(mocks.MockCardRepository)
	notifier := new(mocks.MockNotifier)
	svc := services.NewReminderService(students, cards, notifier, 4*time.Hour, fixedClock)

	chat := int64(100)
	recently := now.Add(-time.Hour)
	longAgo := now.Add(-24 * time.Hour)
	due := models.Student{ID: 1, TelegramChatID: &chat, LastReminderAt: &longAgo}
	fresh := models.Student{ID: 2, TelegramChatID: &chat, LastReminderAt: &recently}
	nothingDue := models.Student{ID: 3, TelegramChatID: &chat}
	unreachable := models.Student{ID: 4, TelegramChatID: &chat}
	students.On("ListReminderTargets", mock.Anything).Return([]models.Student{due, fresh, nothingDue, unreachable}, nil)

	cards.On("CountDue", mock.Anything, int64(1), now).Return(3, nil)
	cards.On("CountDue", mock.Anything, int64(3), now).Return(0, nil)
	cards.On("CountDue", mock.Anything, int64(4), now).Return(1, nil)

	notifier.On("Notify", mock.Anything, due, "You have 3 cards due for review.").Return(nil)
	notifier.On("Notify", mock.Anything, unreachable, "You have 1 card due for review.").Return(errors.New("blocked by user"))
	students.On("UpdateReminded", mock.Anything, int64(1), now).Return(nil)

	report, err := svc.SendDueReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.ReminderReport{Checked: 4, Sent: 1, Skipped: 2, Failed: 1}, report)

	cards.AssertNotCalled(t, "CountDue", mock.Anything, int64(2), mock.Anything)
	students.AssertNotCalled(t, "UpdateReminded", mock.Anything, int64(4), mock.Anything)
	notifier.AssertExpectations(t)
	students.AssertExpectations(t)
}

func TestReminderService_ListFailure(t *testing.T) {
	students := new(mocks.MockStudentRepository)
	svc := services.NewReminderService(students, nil, nil, time.Hour, fixedClock)
	students.On("ListReminderTargets", mock.Anything).Return(nil, errors.New("db closed"))

	_, err := svc.SendDueReminders(context.Background())
	assert.Error(t, err)
}
