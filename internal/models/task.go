package models

import "time"

// TaskType classifies a unit of academic work.
type TaskType string

const (
	TaskTypeReview      TaskType = "REVIEW"
	TaskTypeProblemSet  TaskType = "PROBLEM_SET"
	TaskTypeEssayDraft  TaskType = "ESSAY_DRAFT"
	TaskTypeReading     TaskType = "READING"
	TaskTypeProjectWork TaskType = "PROJECT_WORK"
	TaskTypeExamPrep    TaskType = "EXAM_PREP"
)

// ValidTaskType reports whether the value is a known task type.
func ValidTaskType(t TaskType) bool {
	switch t {
	case TaskTypeReview, TaskTypeProblemSet, TaskTypeEssayDraft, TaskTypeReading, TaskTypeProjectWork, TaskTypeExamPrep:
		return true
	}
	return false
}

// TaskStatus tracks a task through its lifecycle.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusScheduled TaskStatus = "SCHEDULED"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

// StudyTask represents a discrete unit of academic work.
// SubjectID is nullable: tasks without a subject are treated as general work
// with the minimum difficulty.
type StudyTask struct {
	ID              string     `db:"id" json:"id"`
	UserID          string     `db:"user_id" json:"user_id"`
	SubjectID       *string    `db:"subject_id" json:"subject_id,omitempty"`
	Title           string     `db:"title" json:"title"`
	TaskType        TaskType   `db:"task_type" json:"task_type"`
	DurationMinutes int        `db:"duration_minutes" json:"duration_minutes"`
	Deadline        time.Time  `db:"deadline" json:"deadline"`
	Status          TaskStatus `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`

	// SubjectName is resolved on list queries for display, never persisted.
	SubjectName string `db:"subject_name" json:"subject_name,omitempty"`
}

// TaskFilter captures supported filters for listing tasks.
type TaskFilter struct {
	SubjectID string
	Status    TaskStatus
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// TaskProgress summarises task counts per status for a user.
type TaskProgress struct {
	Pending   int `db:"pending" json:"pending"`
	Scheduled int `db:"scheduled" json:"scheduled"`
	Completed int `db:"completed" json:"completed"`
}
