package models

// StudentStats summarises a learner's deck. The counts answer different
// questions and do not sum to Total.
type StudentStats struct {
	Total    int `json:"total"`
	DueToday int `json:"due_today"`
	Mastered int `json:"mastered"`
	Learning int `json:"learning"`
	NewCards int `json:"new_cards"`
}

// ImportResult summarises a deck import.
type ImportResult struct {
	EntriesStored int `json:"entries_stored"`
	CardsCreated  int `json:"cards_created"`
	CardsSkipped  int `json:"cards_skipped"`
}

// ReminderReport summarises one reminder sweep.
type ReminderReport struct {
	Checked int `json:"checked"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}
