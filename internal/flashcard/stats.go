package flashcard

import (
	"time"

	"github.com/vytor/lexiflash/internal/models"
)

// MasteryThreshold decides when a card counts as mastered. It is a product
// heuristic on top of SM-2, not part of the algorithm.
type MasteryThreshold struct {
	MinRepetition int
	MinEaseFactor float64
}

var DefaultMastery = MasteryThreshold{MinRepetition: 5, MinEaseFactor: 2.5}

func (m MasteryThreshold) Mastered(s models.ReviewState) bool {
	return s.Repetition >= m.MinRepetition && s.EaseFactor >= m.MinEaseFactor
}

// Stats aggregates the deck summary for cards at now. Learning is bounded by
// MinRepetition so that it mirrors the mastery streak.
func (m MasteryThreshold) Stats(cards []models.Card, now time.Time) models.StudentStats {
	var st models.StudentStats
	st.Total = len(cards)
	for _, c := range cards {
		if c.IsDue(now) {
			st.DueToday++
		}
		if m.Mastered(c.ReviewState) {
			st.Mastered++
		}
		switch {
		case c.Repetition == 0:
			st.NewCards++
		case c.Repetition < m.MinRepetition:
			st.Learning++
		}
	}
	return st
}

// ComputeStats uses DefaultMastery.
func ComputeStats(cards []models.Card, now time.Time) models.StudentStats {
	return DefaultMastery.Stats(cards, now)
}
