package flashcard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/lexiflash/internal/flashcard"
	"github.com/vytor/lexiflash/internal/models"
)

func card(rep int, ef float64, due time.Time) models.Card {
	return models.Card{ReviewState: models.ReviewState{Repetition: rep, EaseFactor: ef, DueAt: due}}
}

func TestComputeStats_Empty(t *testing.T) {
	assert.Equal(t, models.StudentStats{}, flashcard.ComputeStats(nil, now))
	assert.Equal(t, models.StudentStats{}, flashcard.ComputeStats([]models.Card{}, now))
}

func TestComputeStats(t *testing.T) {
	cards := []models.Card{
		card(0, 2.5, now),                     // new, due
		card(0, 2.5, now.Add(-time.Hour)),     // new, due
		card(2, 2.6, now.AddDate(0, 0, 3)),    // learning
		card(4, 2.1, now.Add(-24*time.Hour)),  // learning, due
		card(5, 2.5, now.Add(-time.Minute)),   // mastered, due
		card(9, 2.9, now.AddDate(0, 1, 0)),    // mastered
		card(6, 1.8, now.AddDate(0, 0, 20)),   // streak without ease: neither
		card(1, 2.5, now.Add(time.Nanosecond)), // learning, not yet due
	}

	st := flashcard.ComputeStats(cards, now)

	assert.Equal(t, 8, st.Total)
	assert.Equal(t, 4, st.DueToday)
	assert.Equal(t, 2, st.Mastered)
	assert.Equal(t, 3, st.Learning)
	assert.Equal(t, 2, st.NewCards)
}

func TestComputeStats_DueBoundaryIsInclusive(t *testing.T) {
	st := flashcard.ComputeStats([]models.Card{card(0, 2.5, now)}, now)
	assert.Equal(t, 1, st.DueToday)
}

func TestMasteryThreshold_Tunable(t *testing.T) {
	strict := flashcard.MasteryThreshold{MinRepetition: 8, MinEaseFactor: 2.7}
	cards := []models.Card{
		card(5, 2.5, now.AddDate(0, 0, 1)),
		card(8, 2.8, now.AddDate(0, 0, 1)),
	}

	st := strict.Stats(cards, now)

	assert.Equal(t, 1, st.Mastered)
	assert.Equal(t, 1, st.Learning)
	assert.Equal(t, 0, st.DueToday)
}
