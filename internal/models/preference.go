package models

import "time"

// Default break settings applied when a user never saved preferences.
const (
	DefaultBreakLength    = 15
	DefaultBreakFrequency = 60
)

// StudyPreference stores break pacing and learning style for a user, one row per user.
type StudyPreference struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	BreakLength    int       `db:"break_length" json:"break_length"`
	BreakFrequency int       `db:"break_frequency" json:"break_frequency"`
	LearningStyle  string    `db:"learning_style" json:"learning_style"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultStudyPreference returns the fallback preferences for a user without a saved row.
func DefaultStudyPreference(userID string) StudyPreference {
	return StudyPreference{
		UserID:         userID,
		BreakLength:    DefaultBreakLength,
		BreakFrequency: DefaultBreakFrequency,
	}
}
