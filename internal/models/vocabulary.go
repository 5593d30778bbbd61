package models

import "time"

type VocabularyEntry struct {
	ID          int64     `json:"id"`
	Term        string    `json:"term" validate:"required,max=200"`
	Translation string    `json:"translation" validate:"required,max=500"`
	Language    string    `json:"language" validate:"required,bcp47_language_tag"`
	Level       string    `json:"level" validate:"omitempty,oneof=A1 A2 B1 B2 C1 C2"`
	Example     string    `json:"example" validate:"max=1000"`
	CreatedAt   time.Time `json:"created_at"`
}

type VocabularyFilter struct {
	Language string
	Level    string
	Search   string
	Limit    int
	Offset   int
}
