package models

import "time"

// ReviewState is the SM-2 memory state of a single learner/item pair.
type ReviewState struct {
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
	Repetition   int       `json:"repetition"`
	DueAt        time.Time `json:"due_at"`
}

// CardContent is what a learner sees on either side of a card.
type CardContent struct {
	Front        string `json:"front" validate:"required,max=500"`
	Back         string `json:"back" validate:"required,max=500"`
	VocabularyID *int64 `json:"vocabulary_id,omitempty"`
}

type Card struct {
	ID        int64 `json:"id"`
	StudentID int64 `json:"student_id"`
	CardContent
	ReviewState
	Version        int64      `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	LastReviewedAt *time.Time `json:"last_reviewed_at"`
}

// IsDue reports whether the card is eligible for review at now.
func (c Card) IsDue(now time.Time) bool {
	return !c.DueAt.After(now)
}

type ReviewHistory struct {
	ID           int64     `json:"id"`
	CardID       int64     `json:"card_id"`
	Grade        Grade     `json:"grade"`
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
	Repetition   int       `json:"repetition"`
	TimeSeconds  float64   `json:"time_seconds"`
	ReviewedAt   time.Time `json:"reviewed_at"`
}
