package flashcard

import (
	"fmt"

	"github.com/vytor/lexiflash/internal/models"
)

// Grade is re-exported so scheduler callers need not import models.
type Grade = models.Grade

const (
	GradeBlackout          = models.GradeBlackout
	GradeIncorrect         = models.GradeIncorrect
	GradeIncorrectFamiliar = models.GradeIncorrectFamiliar
	GradeHard              = models.GradeHard
	GradeGood              = models.GradeGood
	GradePerfect           = models.GradePerfect

	PassingGrade = models.PassingGrade
)

var ErrInvalidGrade = models.ErrInvalidGrade

// ParseGrade converts a raw integer into a Grade.
func ParseGrade(v int) (Grade, error) {
	return models.ParseGrade(v)
}

func invalidGrade(v int) error {
	return fmt.Errorf("%w: %d (want 0..5)", ErrInvalidGrade, v)
}
