package models

import "time"

type Student struct {
	ID             int64      `json:"id"`
	Username       string     `json:"username"`
	DisplayName    string     `json:"display_name"`
	TelegramChatID *int64     `json:"telegram_chat_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	LastReminderAt *time.Time `json:"last_reminder_at"`
}

// NewStudent is the payload for registering (or re-registering) a learner.
type NewStudent struct {
	Username       string `json:"username" validate:"required,min=2,max=64"`
	DisplayName    string `json:"display_name" validate:"max=128"`
	TelegramChatID *int64 `json:"telegram_chat_id"`
}
