package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// ScheduleBlock is a contiguous placed segment of a task's work within one day.
// Start and End are minutes after midnight.
type ScheduleBlock struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	TaskID      string    `db:"task_id" json:"task_id"`
	DayOfWeek   string    `db:"day_of_week" json:"day_of_week"`
	StartMinute int       `db:"start_minute" json:"start_minute"`
	EndMinute   int       `db:"end_minute" json:"end_minute"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// TaskTitle and SubjectName are joined in on list queries for display.
	TaskTitle   string `db:"task_title" json:"task_title,omitempty"`
	SubjectName string `db:"subject_name" json:"subject_name,omitempty"`
}

// GenerationRun records one schedule generation for audit and stats.
type GenerationRun struct {
	ID          string         `db:"id" json:"id"`
	UserID      string         `db:"user_id" json:"user_id"`
	PlacedCount int            `db:"placed_count" json:"placed_count"`
	Unplaced    int            `db:"unplaced_count" json:"unplaced_count"`
	Meta        types.JSONText `db:"meta" json:"meta,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}
