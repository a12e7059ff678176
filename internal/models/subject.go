package models

import "time"

// Difficulty bounds for subjects, ordinal scale.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Subject represents an academic subject owned by a user.
type Subject struct {
	ID         string     `db:"id" json:"id"`
	UserID     string     `db:"user_id" json:"user_id"`
	Name       string     `db:"name" json:"name"`
	Difficulty int        `db:"difficulty" json:"difficulty"`
	ExamDate   *time.Time `db:"exam_date" json:"exam_date,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// SubjectFilter captures supported filters for listing subjects.
type SubjectFilter struct {
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
