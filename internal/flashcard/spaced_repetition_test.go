package flashcard_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/lexiflash/internal/flashcard"
	"github.com/vytor/lexiflash/internal/models"
)

var now = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func review(t *testing.T, s models.ReviewState, g flashcard.Grade) models.ReviewState {
	t.Helper()
	next, err := flashcard.ApplyReview(s, g, now)
	require.NoError(t, err)
	return next
}

func TestInitialState(t *testing.T) {
	s := flashcard.InitialState(now)

	assert.Equal(t, 2.5, s.EaseFactor)
	assert.Equal(t, 0, s.IntervalDays)
	assert.Equal(t, 0, s.Repetition)
	assert.True(t, s.DueAt.Equal(now), "new cards are due immediately")

	again := flashcard.InitialState(now.Add(time.Minute))
	assert.Equal(t, s.EaseFactor, again.EaseFactor)
	assert.Equal(t, s.IntervalDays, again.IntervalDays)
	assert.Equal(t, s.Repetition, again.Repetition)
}

func TestApplyReview_PerfectThenFail(t *testing.T) {
	s := flashcard.InitialState(now)

	s = review(t, s, flashcard.GradePerfect)
	assert.InDelta(t, 2.6, s.EaseFactor, 1e-9)
	assert.Equal(t, 1, s.IntervalDays)
	assert.Equal(t, 1, s.Repetition)
	assert.True(t, s.DueAt.Equal(now.AddDate(0, 0, 1)))

	s = review(t, s, flashcard.GradePerfect)
	assert.InDelta(t, 2.7, s.EaseFactor, 1e-9)
	assert.Equal(t, 6, s.IntervalDays)
	assert.Equal(t, 2, s.Repetition)
	assert.True(t, s.DueAt.Equal(now.AddDate(0, 0, 6)))

	s = review(t, s, flashcard.GradeIncorrectFamiliar)
	assert.Equal(t, 0, s.Repetition)
	assert.Equal(t, 1, s.IntervalDays)
	// 2.7 + (0.1 - 3*(0.08 + 3*0.02)) = 2.38
	assert.InDelta(t, 2.38, s.EaseFactor, 1e-9, "ease factor still moves on a lapse")
}

func TestApplyReview_ThirdPassMultipliesByNewEase(t *testing.T) {
	s := flashcard.InitialState(now)
	s = review(t, s, flashcard.GradeGood)
	s = review(t, s, flashcard.GradeGood)
	require.Equal(t, 6, s.IntervalDays)

	s = review(t, s, flashcard.GradeGood)
	assert.Equal(t, 3, s.Repetition)
	assert.Equal(t, int(math.Round(6*s.EaseFactor)), s.IntervalDays)
	assert.Equal(t, 15, s.IntervalDays)
}

func TestApplyReview_IntervalCalculation(t *testing.T) {
	tests := []struct {
		name       string
		grade      flashcard.Grade
		state      models.ReviewState
		expected   int
		expectedEF float64
	}{
		{
			name:       "first pass schedules one day",
			grade:      flashcard.GradeHard,
			state:      models.ReviewState{EaseFactor: 2.5},
			expected:   1,
			expectedEF: 2.36,
		},
		{
			name:       "second pass schedules six days",
			grade:      flashcard.GradeGood,
			state:      models.ReviewState{EaseFactor: 2.5, IntervalDays: 1, Repetition: 1},
			expected:   6,
			expectedEF: 2.5,
		},
		{
			name:       "mature card grows by new ease factor",
			grade:      flashcard.GradePerfect,
			state:      models.ReviewState{EaseFactor: 2.5, IntervalDays: 10, Repetition: 4},
			expected:   26, // 10 * 2.6
			expectedEF: 2.6,
		},
		{
			name:       "rounding is to nearest",
			grade:      flashcard.GradeGood,
			state:      models.ReviewState{EaseFactor: 1.3, IntervalDays: 5, Repetition: 3},
			expected:   7, // 5 * 1.3 = 6.5
			expectedEF: 1.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := review(t, tt.state, tt.grade)
			assert.Equal(t, tt.expected, updated.IntervalDays)
			assert.InDelta(t, tt.expectedEF, updated.EaseFactor, 1e-9)
		})
	}
}

func TestApplyReview_GradeThreeIsAPass(t *testing.T) {
	s := models.ReviewState{EaseFactor: 2.5, IntervalDays: 6, Repetition: 2}

	updated := review(t, s, flashcard.GradeHard)

	assert.Equal(t, 3, updated.Repetition)
	assert.Less(t, updated.EaseFactor, s.EaseFactor, "grade 3 still lowers the ease factor")
}

func TestApplyReview_FailureResets(t *testing.T) {
	start := models.ReviewState{EaseFactor: 2.8, IntervalDays: 40, Repetition: 7}

	for _, g := range []flashcard.Grade{flashcard.GradeBlackout, flashcard.GradeIncorrect, flashcard.GradeIncorrectFamiliar} {
		t.Run(g.String(), func(t *testing.T) {
			updated := review(t, start, g)
			assert.Equal(t, 0, updated.Repetition)
			assert.Equal(t, 1, updated.IntervalDays)
			assert.True(t, updated.DueAt.Equal(now.AddDate(0, 0, 1)))
		})
	}
}

func TestApplyReview_PassIncrements(t *testing.T) {
	start := models.ReviewState{EaseFactor: 1.9, IntervalDays: 12, Repetition: 4}

	for _, g := range []flashcard.Grade{flashcard.GradeHard, flashcard.GradeGood, flashcard.GradePerfect} {
		t.Run(g.String(), func(t *testing.T) {
			updated := review(t, start, g)
			assert.Equal(t, start.Repetition+1, updated.Repetition)
		})
	}
}

func TestApplyReview_MinEaseFactor(t *testing.T) {
	s := flashcard.InitialState(now)

	for i := 0; i < 10; i++ {
		s = review(t, s, flashcard.GradeBlackout)
		assert.GreaterOrEqual(t, s.EaseFactor, flashcard.MinEaseFactor)
		assert.Equal(t, 0, s.Repetition)
		assert.Equal(t, 1, s.IntervalDays)
	}
	assert.Equal(t, 1.3, s.EaseFactor, "ease factor settles exactly on the floor")
}

func TestApplyReview_EaseFloorHoldsForAnySequence(t *testing.T) {
	grades := []flashcard.Grade{0, 5, 1, 3, 2, 4, 0, 0, 3, 3, 5, 1, 2, 2, 0, 4}
	s := flashcard.InitialState(now)
	for _, g := range grades {
		s = review(t, s, g)
		assert.GreaterOrEqual(t, s.EaseFactor, flashcard.MinEaseFactor)
		assert.GreaterOrEqual(t, s.IntervalDays, 1)
		assert.GreaterOrEqual(t, s.Repetition, 0)
	}
}

func TestApplyReview_DoesNotMutateInput(t *testing.T) {
	s := models.ReviewState{EaseFactor: 2.5, IntervalDays: 6, Repetition: 2, DueAt: now}
	before := s

	_ = review(t, s, flashcard.GradePerfect)

	assert.Equal(t, before, s)
}

func TestApplyReview_InvalidGrade(t *testing.T) {
	s := flashcard.InitialState(now)

	for _, g := range []flashcard.Grade{-1, 6, 42} {
		updated, err := flashcard.ApplyReview(s, g, now)
		require.Error(t, err)
		assert.ErrorIs(t, err, flashcard.ErrInvalidGrade)
		assert.Equal(t, s, updated)
	}
}

func TestApplyReview_IntervalIsCapped(t *testing.T) {
	s := flashcard.InitialState(now)
	for range 30 {
		s = review(t, s, flashcard.GradePerfect)
	}

	assert.Equal(t, flashcard.MaxIntervalDays, s.IntervalDays)
	assert.Equal(t, now.AddDate(0, 0, flashcard.MaxIntervalDays), s.DueAt)
	assert.LessOrEqual(t, s.DueAt.Year(), 9999)
}

func TestApplyReview_ScheduleOverflow(t *testing.T) {
	late := time.Date(9990, 1, 1, 0, 0, 0, 0, time.UTC)
	s := models.ReviewState{EaseFactor: 2.5, IntervalDays: 6000, Repetition: 5, DueAt: late}

	updated, err := flashcard.ApplyReview(s, flashcard.GradeGood, late)
	require.Error(t, err)
	assert.ErrorIs(t, err, flashcard.ErrScheduleOverflow)
	assert.Equal(t, s, updated)
}
