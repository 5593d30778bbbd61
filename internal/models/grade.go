package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidGrade is returned for any grade outside 0..5.
var ErrInvalidGrade = errors.New("invalid grade")

// Grade is a learner's self-reported recall quality.
type Grade int

const (
	GradeBlackout          Grade = iota // no recall at all
	GradeIncorrect                      // wrong, but recognised the answer
	GradeIncorrectFamiliar              // wrong, answer felt easy once shown
	GradeHard                           // correct with serious difficulty
	GradeGood                           // correct after hesitation
	GradePerfect                        // instant recall
)

// PassingGrade is the lowest grade that counts as a successful recall.
const PassingGrade = GradeHard

var gradeNames = [...]string{
	GradeBlackout:          "blackout",
	GradeIncorrect:         "incorrect",
	GradeIncorrectFamiliar: "incorrect_familiar",
	GradeHard:              "hard",
	GradeGood:              "good",
	GradePerfect:           "perfect",
}

var (
	_ fmt.Stringer     = Grade(0)
	_ json.Unmarshaler = (*Grade)(nil)
)

// ParseGrade converts a raw integer into a Grade.
func ParseGrade(v int) (Grade, error) {
	g := Grade(v)
	if !g.IsValid() {
		return 0, invalidGrade(v)
	}
	return g, nil
}

func (g Grade) IsValid() bool {
	return g >= GradeBlackout && g <= GradePerfect
}

// Passed reports whether g keeps the repetition streak going.
func (g Grade) Passed() bool {
	return g >= PassingGrade
}

func (g Grade) String() string {
	if g.IsValid() {
		return gradeNames[g]
	}
	return fmt.Sprintf("Grade(%d)", int(g))
}

// UnmarshalJSON accepts only integers in 0..5.
func (g *Grade) UnmarshalJSON(data []byte) error {
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidGrade, data)
	}
	parsed, err := ParseGrade(v)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

func invalidGrade(v int) error {
	return fmt.Errorf("%w: %d (want 0..5)", ErrInvalidGrade, v)
}
