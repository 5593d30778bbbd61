package flashcard

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vytor/lexiflash/internal/models"
)

const (
	InitialEaseFactor = 2.5
	MinEaseFactor     = 1.3

	// MaxIntervalDays caps growth at roughly a century so due dates stay
	// representable as four-digit-year timestamps.
	MaxIntervalDays = 36500
)

// ErrScheduleOverflow is returned when the next due date would fall past
// year 9999.
var ErrScheduleOverflow = errors.New("flashcard: next review beyond year 9999")

// InitialState is the never-reviewed state, due immediately. Card creation
// and reset both start from here.
func InitialState(now time.Time) models.ReviewState {
	return models.ReviewState{
		EaseFactor:   InitialEaseFactor,
		IntervalDays: 0,
		Repetition:   0,
		DueAt:        now,
	}
}

// ApplyReview computes the next SM-2 state for a review graded at now.
// The ease factor moves on every review; a lapse only resets repetition and
// interval.
func ApplyReview(state models.ReviewState, grade Grade, now time.Time) (models.ReviewState, error) {
	if !grade.IsValid() {
		return state, invalidGrade(int(grade))
	}

	q := float64(5 - grade)
	ef := state.EaseFactor + (0.1 - q*(0.08+q*0.02))
	if ef < MinEaseFactor {
		ef = MinEaseFactor
	}

	next := models.ReviewState{EaseFactor: ef}
	if grade.Passed() {
		next.Repetition = state.Repetition + 1
		switch next.Repetition {
		case 1:
			next.IntervalDays = 1
		case 2:
			next.IntervalDays = 6
		default:
			next.IntervalDays = int(math.Min(math.Round(float64(state.IntervalDays)*ef), MaxIntervalDays))
		}
	} else {
		next.Repetition = 0
		next.IntervalDays = 1
	}
	next.DueAt = now.AddDate(0, 0, next.IntervalDays)
	if next.DueAt.Year() > 9999 {
		return state, fmt.Errorf("%w: interval %d days from %s", ErrScheduleOverflow, next.IntervalDays, now.Format(time.DateOnly))
	}
	return next, nil
}
