package models

import "time"

// Difficulty levels accepted for a question.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Question is a single interview question with its answer.
type Question struct {
	ID         string `json:"id"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Question   string `json:"question"`
	// Answer holds serialized rich content (text, code, images, tables).
	Answer    string    `json:"answer"`
	Tags      string    `json:"tags"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidDifficulty reports whether d is one of the known difficulty levels.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
